package viz

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/san-kum/ambient/internal/graph"
	"github.com/san-kum/ambient/internal/scene"
)

const (
	stateList = iota
	stateNode
)

// chrome is the number of lines the list view spends outside the node rows.
const chrome = 9

// BrowserOptions are the optional collaborators of a Browser.
type BrowserOptions struct {
	// Datasets lists the names Tab cycles through.
	Datasets []string
	// Load resolves a dataset name; defaults to graph.Load.
	Load   func(name string) (*graph.Graph, error)
	Logger *log.Logger
}

// Browser is a Bubble Tea model listing a dataset's nodes and showing each
// node's links. Enter on a link follows it; Esc walks back.
type Browser struct {
	graph *graph.Graph
	nodes []graph.Node
	inSeq map[string]int

	state  int
	cursor int
	offset int

	// node view
	current string
	links   []graph.Link
	parents int
	link    int
	history []string

	theme  Theme
	styles Styles
	opts   BrowserOptions
	log    *log.Logger
	err    error

	width, height int
}

// NewBrowser returns a browser over g drawn with the given palette.
func NewBrowser(g *graph.Graph, pal scene.Palette, opts BrowserOptions) *Browser {
	if opts.Load == nil {
		opts.Load = graph.Load
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	b := &Browser{
		opts:   opts,
		log:    logger,
		width:  80,
		height: 24,
	}
	b.setTheme(ThemeFor(pal))
	b.setGraph(g)
	return b
}

func (b *Browser) setTheme(t Theme) {
	b.theme = t
	b.styles = NewStyles(t)
}

func (b *Browser) setGraph(g *graph.Graph) {
	b.graph = g
	b.nodes = g.Nodes()
	b.inSeq = make(map[string]int)
	for i, id := range g.Sequence() {
		b.inSeq[id] = i + 1
	}
	b.state, b.cursor, b.offset = stateList, 0, 0
	b.current, b.links, b.history = "", nil, nil
}

// Graph returns the dataset being browsed.
func (b *Browser) Graph() *graph.Graph { return b.graph }

// Theme returns the active theme.
func (b *Browser) Theme() Theme { return b.theme }

// Current returns the id of the open node, or "" in the list view.
func (b *Browser) Current() string {
	if b.state != stateNode {
		return ""
	}
	return b.current
}

// Selected returns the node under the list cursor.
func (b *Browser) Selected() graph.Node { return b.nodes[b.cursor] }

// Err returns the last dataset load failure, if any.
func (b *Browser) Err() error { return b.err }

func (b *Browser) Init() tea.Cmd { return nil }

func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return b, b.handleKey(msg)
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
		b.scroll()
	}
	return b, nil
}

func (b *Browser) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "tab":
		b.nextDataset()
		return nil
	case "t":
		b.setTheme(nextTheme(b.theme.Name))
		return nil
	}

	switch b.state {
	case stateList:
		b.listKey(msg)
	case stateNode:
		b.nodeKey(msg)
	}
	return nil
}

func (b *Browser) listKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "up", "k":
		if b.cursor > 0 {
			b.cursor--
		}
	case "down", "j":
		if b.cursor < len(b.nodes)-1 {
			b.cursor++
		}
	case "home", "g":
		b.cursor = 0
	case "end", "G":
		b.cursor = len(b.nodes) - 1
	case "enter", " ":
		b.history = nil
		b.open(b.nodes[b.cursor].ID)
	}
	b.scroll()
}

func (b *Browser) nodeKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "up", "k":
		if b.link > 0 {
			b.link--
		}
	case "down", "j":
		if b.link < len(b.links)-1 {
			b.link++
		}
	case "enter", " ":
		if b.link < len(b.links) {
			b.history = append(b.history, b.current)
			b.open(b.links[b.link].Node.ID)
		}
	case "esc", "backspace":
		if n := len(b.history); n > 0 {
			prev := b.history[n-1]
			b.history = b.history[:n-1]
			b.open(prev)
			return
		}
		b.state = stateList
	}
}

func (b *Browser) open(id string) {
	parents := b.graph.Parents(id)
	b.links = append(parents, b.graph.Children(id)...)
	b.parents = len(parents)
	b.current, b.link, b.state = id, 0, stateNode
}

func (b *Browser) scroll() {
	rows := max(1, b.height-chrome)
	if b.cursor < b.offset {
		b.offset = b.cursor
	}
	if b.cursor >= b.offset+rows {
		b.offset = b.cursor - rows + 1
	}
}

func (b *Browser) nextDataset() {
	names := b.opts.Datasets
	if len(names) < 2 {
		return
	}
	next := names[0]
	for i, n := range names {
		if n == b.graph.Name() {
			next = names[(i+1)%len(names)]
			break
		}
	}
	g, err := b.opts.Load(next)
	if err != nil {
		b.err = fmt.Errorf("load %s: %w", next, err)
		b.log.Error("dataset switch failed", "name", next, "err", err)
		return
	}
	b.err = nil
	b.setGraph(g)
	b.log.Info("dataset selected", "name", g.Name(), "nodes", g.Len())
}

func (b *Browser) View() string {
	switch b.state {
	case stateNode:
		return b.viewNode()
	}
	return b.viewList()
}

func (b *Browser) header(sb *strings.Builder, title, subtitle string) {
	s := b.styles
	sb.WriteString("\n    " + s.Title.Render(title) + "\n")
	sb.WriteString("    " + s.Subtitle.Render(subtitle) + "\n")
	sb.WriteString("    " + s.Separator(min(b.width-8, 48)) + "\n\n")
}

func (b *Browser) footer(sb *strings.Builder, hints ...string) {
	sb.WriteString("\n    " + b.styles.Hints(hints...) + "\n")
	if b.err != nil {
		sb.WriteString("    " + b.styles.Cursor.Render(b.err.Error()) + "\n")
	}
}

func (b *Browser) viewList() string {
	var sb strings.Builder
	s := b.styles
	g := b.graph
	b.header(&sb, strings.ToUpper(g.Title()), fmt.Sprintf("%s · %d nodes · %d edges · %s", g.Name(), g.Len(), g.EdgeCount(), b.theme.Name))

	rows := max(1, b.height-chrome)
	end := min(len(b.nodes), b.offset+rows)
	for i := b.offset; i < end; i++ {
		n := b.nodes[i]
		mark := "  "
		if pos, ok := b.inSeq[n.ID]; ok {
			mark = fmt.Sprintf("%2d", pos)
		}
		label := pad(n.Label, 24)
		kind := pad(n.Type, 10)
		if i == b.cursor {
			sb.WriteString(fmt.Sprintf("    %s %s %s  %s\n", s.Cursor.Render("▸"), s.Subtle.Render(mark), s.Selected.Render(label), s.Subtitle.Render(kind)))
		} else {
			sb.WriteString(fmt.Sprintf("      %s %s  %s\n", s.Subtle.Render(mark), s.Normal.Render(label), s.Subtle.Render(kind)))
		}
	}

	b.footer(&sb, "j/k", "navigate", "enter", "open", "tab", "dataset", "t", "palette", "q", "quit")
	return sb.String()
}

func (b *Browser) viewNode() string {
	var sb strings.Builder
	s := b.styles
	n, _ := b.graph.Node(b.current)

	sub := fmt.Sprintf("%s · %s · %d neighbours", n.Type, n.ID, len(b.graph.Connected(n.ID)))
	if pos, ok := b.inSeq[n.ID]; ok {
		sub += fmt.Sprintf(" · sequence %d/%d", pos, len(b.inSeq))
	}
	b.header(&sb, n.Label, sub)

	if len(b.links) == 0 {
		sb.WriteString("    " + s.Subtle.Render("(no links)") + "\n")
	}
	for i, l := range b.links {
		if i == 0 && b.parents > 0 {
			sb.WriteString("    " + s.Header.Render("participates in") + "\n")
		}
		if i == b.parents {
			sb.WriteString("    " + s.Header.Render("contains") + "\n")
		}
		glyph := string(scene.EdgeGlyph(l.Weight))
		label := pad(l.Node.Label, 24)
		bar := s.WeightBar(l.Weight, 10)
		if i == b.link {
			sb.WriteString(fmt.Sprintf("    %s %s %s %s %.2f\n", s.Cursor.Render("▸"), s.Subtle.Render(glyph), s.Selected.Render(label), bar, l.Weight))
		} else {
			sb.WriteString(fmt.Sprintf("      %s %s %s %s\n", s.Subtle.Render(glyph), s.Normal.Render(label), bar, s.Subtle.Render(fmt.Sprintf("%.2f", l.Weight))))
		}
	}

	if peers := b.graph.Peers(n.ID); len(peers) > 0 {
		names := make([]string, len(peers))
		for i, l := range peers {
			names[i] = l.Node.Label
		}
		sb.WriteString("\n    " + s.Subtle.Render("siblings: "+scene.Truncate(strings.Join(names, ", "), max(10, b.width-14))) + "\n")
	}
	if len(b.history) > 0 {
		sb.WriteString("\n    " + s.Subtle.Render("trail: "+strings.Join(b.history, " › ")) + "\n")
	}
	b.footer(&sb, "j/k", "select", "enter", "follow", "esc", "back", "q", "quit")
	return sb.String()
}

// RunBrowser runs b on the terminal until the user quits or ctx is done.
func RunBrowser(ctx context.Context, b *Browser) error {
	_, err := tea.NewProgram(b, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
