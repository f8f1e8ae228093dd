// Package parse reads grid layouts from df-style node reports.
//
// A report lists one storage node per line:
//
//	root@ebhq-gridcenter# df -h
//	Filesystem              Size  Used  Avail  Use%
//	/dev/grid/node-x0-y0     94T   67T    27T   71%
//	/dev/grid/node-x0-y1     87T   73T    14T   83%
//
// Only the coordinates, size and used columns are read. Lines that do not look
// like a node entry (prompts, headers, garbage) are skipped and their line
// numbers recorded in [Report.Skipped]; blank lines are ignored silently.
// Values that do not fit the capacity range fail with CAPACITY_OVERFLOW
// rather than being truncated.
package parse

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	gserrors "github.com/matzehuels/gridshift/pkg/errors"
	"github.com/matzehuels/gridshift/pkg/grid"
)

var dfLineRE = regexp.MustCompile(`^/dev/grid/node-x(\d+)-y(\d+)\s+(\d+)T\s+(\d+)T(?:\s|$)`)

// Entry is one parsed node line.
type Entry struct {
	Node grid.Node
	Used grid.Units
	Line int // 1-based line number in the report
}

// Report is the parsed content of a df report.
type Report struct {
	Entries []Entry
	Skipped []int // 1-based line numbers of non-blank lines that were not node entries
}

// Read parses a report from r. It does not close r.
func Read(r io.Reader) (*Report, error) {
	rep := &Report{}
	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		m := dfLineRE.FindStringSubmatch(line)
		if m == nil {
			rep.Skipped = append(rep.Skipped, lineNo)
			continue
		}
		e, err := parseEntry(m)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		e.Line = lineNo
		rep.Entries = append(rep.Entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	return rep, nil
}

// ReadFile parses the report at path.
func ReadFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

func parseEntry(m []string) (Entry, error) {
	x, err := parseCoord("x", m[1])
	if err != nil {
		return Entry{}, err
	}
	y, err := parseCoord("y", m[2])
	if err != nil {
		return Entry{}, err
	}
	size, err := gserrors.ParseUnits("size", m[3])
	if err != nil {
		return Entry{}, err
	}
	used, err := gserrors.ParseUnits("used", m[4])
	if err != nil {
		return Entry{}, err
	}
	if used > size {
		return Entry{}, gserrors.New(gserrors.ErrCodeInvalidInput,
			"node-x%d-y%d uses %dT of %dT", x, y, used, size)
	}
	return Entry{
		Node: grid.Node{X: x, Y: y, Capacity: grid.Units(size)},
		Used: grid.Units(used),
	}, nil
}

func parseCoord(axis, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, gserrors.Wrap(gserrors.ErrCodeInvalidInput, err, "%s coordinate %q", axis, s)
	}
	return v, nil
}

// Nodes returns the node layout in report order.
func (r *Report) Nodes() []grid.Node {
	nodes := make([]grid.Node, len(r.Entries))
	for i, e := range r.Entries {
		nodes[i] = e.Node
	}
	return nodes
}

// Usages returns the used column in report order.
func (r *Report) Usages() []grid.Units {
	used := make([]grid.Units, len(r.Entries))
	for i, e := range r.Entries {
		used[i] = e.Used
	}
	return used
}

// Puzzle builds the grid and the initial state. The payload starts at the
// node with y = 0 and the largest x; that node must hold data.
func (r *Report) Puzzle(opts ...grid.Option) (*grid.Grid, grid.State, error) {
	g, err := grid.New(r.Nodes(), opts...)
	if err != nil {
		return nil, grid.State{}, err
	}
	src, ok := g.PayloadSource()
	if !ok {
		return nil, grid.State{}, gserrors.New(gserrors.ErrCodeInvalidLayout, "no node with y = 0")
	}
	used := r.Usages()
	if used[src] == 0 {
		return nil, grid.State{}, gserrors.New(gserrors.ErrCodeInvalidInput,
			"payload node %s holds no data", g.Node(src))
	}
	s, err := g.NewState(used, src)
	if err != nil {
		return nil, grid.State{}, err
	}
	return g, s, nil
}
