package wikitable

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/nepali-holidays/nepcal/internal/holiday"
	"github.com/nepali-holidays/nepcal/internal/logger"
)

const (
	// DefaultClass is the class MediaWiki puts on data tables
	DefaultClass = "wikitable"

	// Spans beyond this are treated as markup errors and clamped
	maxSpan = 1000
)

// Elements dropped from cell text: footnote links, hidden sort keys, styles
const noiseSelector = "sup.reference, .sortkey, .reference, style, script, [style*='display:none'], [style*='display: none']"

type cell struct {
	text   string
	header bool
}

// Extract returns the rows of every table with the wikitable class in page
func Extract(page string) ([]holiday.RawRow, error) {
	return ExtractClass(strings.NewReader(page), DefaultClass)
}

// ExtractFrom reads the document from r
func ExtractFrom(r io.Reader) ([]holiday.RawRow, error) {
	return ExtractClass(r, DefaultClass)
}

// ExtractClass returns the rows of every table carrying class, in document order.
// Tables that cannot be parsed are skipped with a warning as long as at least one
// matched table yields rows.
func ExtractClass(r io.Reader, class string) ([]holiday.RawRow, error) {
	if class == "" {
		class = DefaultClass
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &ParseError{Reason: "reading document", Err: err}
	}

	tables := doc.Find("table." + class)
	if tables.Length() == 0 {
		return nil, fmt.Errorf("%w: class %q", ErrNoTableFound, class)
	}

	var (
		rows     []holiday.RawRow
		parsed   int
		firstErr error
	)
	tables.Each(func(i int, table *goquery.Selection) {
		tableRows, err := parseTable(table)
		if err != nil {
			pe := &ParseError{Table: i + 1, Reason: err.Error()}
			if firstErr == nil {
				firstErr = pe
			}
			logger.Warn("skipping table", logger.Fields{
				"table":  i + 1,
				"reason": err.Error(),
			})
			return
		}
		parsed++
		rows = append(rows, tableRows...)
	})

	if parsed == 0 {
		return nil, firstErr
	}

	logger.Debug("extracted tables", logger.Fields{
		"tables": parsed,
		"rows":   len(rows),
	})

	return rows, nil
}

// parseTable expands one table into keyed rows
func parseTable(table *goquery.Selection) ([]holiday.RawRow, error) {
	trs := table.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.Closest("table").IsSelection(table)
	})
	if trs.Length() == 0 {
		return nil, fmt.Errorf("no rows")
	}

	grid, inHead := buildGrid(trs)

	// With a <thead> only its rows are headers; otherwise leading rows of <th>
	hasHead := false
	for _, h := range inHead {
		hasHead = hasHead || h
	}
	headerRows := 0
	for i, row := range grid {
		if (hasHead && !inHead[i]) || (!hasHead && !allHeaders(row)) {
			break
		}
		headerRows++
	}
	if headerRows == 0 {
		return nil, fmt.Errorf("no header row")
	}

	keys := columnKeys(grid[:headerRows])

	rows := make([]holiday.RawRow, 0, len(grid)-headerRows)
	for _, cells := range grid[headerRows:] {
		if len(cells) == 0 {
			continue
		}
		row := holiday.NewRawRow()
		for j, key := range keys {
			text := ""
			if j < len(cells) {
				text = cells[j].text
			}
			row.Set(key, text)
		}
		if row.Empty() {
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data rows")
	}
	holiday.InferColumnKinds(rows)

	return rows, nil
}

type spanned struct {
	cell cell
	left int
}

// buildGrid lays the cells of trs out on a grid, repeating spanned cells in
// every row and column they cover. inHead marks rows that sit in <thead>.
func buildGrid(trs *goquery.Selection) ([][]cell, []bool) {
	grid := make([][]cell, 0, trs.Length())
	inHead := make([]bool, 0, trs.Length())
	carry := make(map[int]*spanned)

	trs.Each(func(_ int, tr *goquery.Selection) {
		row := make([]cell, 0)
		col := 0

		fill := func() {
			for {
				s, ok := carry[col]
				if !ok {
					return
				}
				row = append(row, s.cell)
				s.left--
				if s.left == 0 {
					delete(carry, col)
				}
				col++
			}
		}

		tr.ChildrenFiltered("th, td").Each(func(_ int, td *goquery.Selection) {
			fill()
			c := cell{
				text:   cellText(td),
				header: td.Nodes[0].DataAtom == atom.Th,
			}
			colspan := spanAttr(td, "colspan")
			rowspan := spanAttr(td, "rowspan")
			for k := 0; k < colspan; k++ {
				row = append(row, c)
				if rowspan > 1 {
					carry[col] = &spanned{cell: c, left: rowspan - 1}
				}
				col++
			}
		})

		// Spans from earlier rows may reach past the cells of this one
		for len(carry) > 0 && col <= maxCarried(carry) {
			if _, ok := carry[col]; ok {
				fill()
				continue
			}
			row = append(row, cell{})
			col++
		}

		grid = append(grid, row)
		inHead = append(inHead, goquery.NodeName(tr.Parent()) == "thead")
	})

	return grid, inHead
}

func maxCarried(carry map[int]*spanned) int {
	last := -1
	for col := range carry {
		if col > last {
			last = col
		}
	}
	return last
}

func allHeaders(row []cell) bool {
	if len(row) == 0 {
		return false
	}
	for _, c := range row {
		if !c.header {
			return false
		}
	}
	return true
}

// columnKeys names each column after its first and last header tier
func columnKeys(header [][]cell) []holiday.ColumnKey {
	width := 0
	for _, row := range header {
		if len(row) > width {
			width = len(row)
		}
	}

	keys := make([]holiday.ColumnKey, width)
	for j := 0; j < width; j++ {
		group := labelAt(header[0], j)
		sub := labelAt(header[len(header)-1], j)
		switch {
		case group == "" && sub == "":
			group = fmt.Sprintf("Unnamed: %d", j)
			sub = group
		case group == "":
			group = sub
		case sub == "":
			sub = group
		}
		keys[j] = holiday.ColumnKey{Group: group, Sub: sub}
	}
	return keys
}

func labelAt(row []cell, j int) string {
	if j >= len(row) {
		return ""
	}
	return row[j].text
}

func spanAttr(sel *goquery.Selection, name string) int {
	v, ok := sel.Attr(name)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), ";")))
	if err != nil || n < 1 {
		return 1
	}
	if n > maxSpan {
		return maxSpan
	}
	return n
}

// cellText returns the visible text of a cell with footnotes removed and
// whitespace collapsed
func cellText(sel *goquery.Selection) string {
	clone := sel.Clone()
	clone.Find(noiseSelector).Remove()
	clone.Find("br").Each(func(_ int, br *goquery.Selection) {
		node := br.Nodes[0]
		if node.Parent != nil {
			node.Parent.InsertBefore(&html.Node{Type: html.TextNode, Data: " "}, node)
		}
	})
	clone.Find("br").Remove()
	return strings.Join(strings.Fields(clone.Text()), " ")
}
