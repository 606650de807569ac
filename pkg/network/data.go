package network

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kpotier/dislgen/pkg/cell"
)

// WriteData writes the network in the native text format: the three basis
// rows, the origin, the periodicity flags, then the node and segment lists.
func (n *Net) WriteData(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "cell")
	h := n.Cell.H()
	for i := 0; i < 3; i++ {
		writeFloats(bw, h[i][0], h[i][1], h[i][2])
	}
	o := n.Cell.Origin()
	writeFloats(bw, o[0], o[1], o[2])
	p := n.Cell.Periodic()
	fmt.Fprintln(bw, boolInt(p[0]), boolInt(p[1]), boolInt(p[2]))

	fmt.Fprintln(bw, "nodes", len(n.Nodes))
	for _, nd := range n.Nodes {
		writeFloats(bw, nd.Pos[0], nd.Pos[1], nd.Pos[2], float64(nd.Constraint))
	}

	fmt.Fprintln(bw, "segs", len(n.Segs))
	for _, s := range n.Segs {
		fmt.Fprint(bw, s.N1, " ", s.N2, " ")
		writeFloats(bw, s.Burg[0], s.Burg[1], s.Burg[2],
			s.Plane[0], s.Plane[1], s.Plane[2])
	}

	return bw.Flush()
}

// ReadData reads a network previously written by WriteData.
func ReadData(r io.Reader) (*Net, error) {
	br := bufio.NewReader(r)

	if err := expect(br, "cell"); err != nil {
		return nil, err
	}
	var h cell.Mat3
	for i := 0; i < 3; i++ {
		row, err := readFloats(br, 3)
		if err != nil {
			return nil, fmt.Errorf("cell row %d: %w", i, err)
		}
		copy(h[i][:], row)
	}
	orig, err := readFloats(br, 3)
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	per, err := readFloats(br, 3)
	if err != nil {
		return nil, fmt.Errorf("periodic: %w", err)
	}
	c, err := cell.New(h, cell.Vec{orig[0], orig[1], orig[2]},
		[3]bool{per[0] != 0, per[1] != 0, per[2] != 0})
	if err != nil {
		return nil, err
	}

	nn, err := count(br, "nodes")
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, nn)
	for i := 0; i < nn; i++ {
		v, err := readFloats(br, 4)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		nodes[i] = Node{Pos: cell.Vec{v[0], v[1], v[2]}, Constraint: int(v[3])}
	}

	ns, err := count(br, "segs")
	if err != nil {
		return nil, err
	}
	segs := make([]Seg, ns)
	for i := 0; i < ns; i++ {
		v, err := readFloats(br, 8)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		segs[i] = Seg{
			N1:    int(v[0]),
			N2:    int(v[1]),
			Burg:  cell.Vec{v[2], v[3], v[4]},
			Plane: cell.Vec{v[5], v[6], v[7]},
		}
	}

	return New(c, nodes, segs), nil
}

func writeFloats(w io.Writer, vals ...float64) {
	var b []byte
	for k, v := range vals {
		if k > 0 {
			b = append(b, ' ')
		}
		b = strconv.AppendFloat(b, v, 'g', -1, 64)
	}
	b = append(b, '\n')
	w.Write(b)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func expect(r *bufio.Reader, word string) error {
	b, err := r.ReadString('\n')
	if err != nil {
		return err
	}
	if strings.TrimSpace(b) != word {
		return fmt.Errorf("expected %q, got %q", word, strings.TrimSpace(b))
	}
	return nil
}

func count(r *bufio.Reader, word string) (int, error) {
	b, err := r.ReadString('\n')
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(b)
	if len(fields) != 2 || fields[0] != word {
		return 0, fmt.Errorf("expected %q count, got %q", word, strings.TrimSpace(b))
	}
	return strconv.Atoi(fields[1])
}

func readFloats(r *bufio.Reader, n int) ([]float64, error) {
	b, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || len(b) == 0) {
		return nil, err
	}
	fields := strings.Fields(b)
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d fields, got %d", n, len(fields))
	}
	vals := make([]float64, n)
	for k, f := range fields {
		vals[k], err = strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
	}
	return vals, nil
}
