package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pthm/ideadensity/internal/proposition"
	"github.com/pthm/ideadensity/internal/relation"
)

// TreeSentence is one sentence shown by the tree viewer
type TreeSentence struct {
	ID           string
	Text         string
	Tree         *relation.Tree
	Propositions []proposition.Proposition
}

// TreeNode represents a displayable row of the viewer
type TreeNode struct {
	Sentence    *TreeSentence
	Relation    *relation.Relation     // nil for sentence headers and propositions
	Proposition *proposition.Proposition // set for proposition rows
	Depth       int
	Expanded    bool
	Children    []*TreeNode
	Parent      *TreeNode
}

// TreeModel is the bubbletea model for browsing dependency trees
type TreeModel struct {
	sentences []TreeSentence
	nodes     []*TreeNode // Flattened list of visible nodes
	allNodes  []*TreeNode // Sentence headers
	cursor    int
	viewport  viewport.Model
	ready     bool
	width     int
	height    int
	showTags  bool
	showProps bool
	keys      treeKeyMap
	styles    treeStyles
}

type treeKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Toggle      key.Binding
	ToggleTags  key.Binding
	ToggleProps key.Binding
	Quit        key.Binding
}

type treeStyles struct {
	selected  lipgloss.Style
	sentence  lipgloss.Style
	word      lipgloss.Style
	rel       lipgloss.Style
	tag       lipgloss.Style
	tree      lipgloss.Style
	dim       lipgloss.Style
	kinds     *Styles
	statusBar lipgloss.Style
	helpBar   lipgloss.Style
}

func defaultTreeKeyMap() treeKeyMap {
	return treeKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "collapse"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "expand"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "toggle"),
		),
		ToggleTags: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle tags"),
		),
		ToggleProps: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "toggle propositions"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func defaultTreeStyles() treeStyles {
	return treeStyles{
		selected:  lipgloss.NewStyle().Background(lipgloss.Color("237")).Bold(true),
		sentence:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
		word:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		rel:       lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		tag:       lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		tree:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		kinds:     NewStyles(true),
		statusBar: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1),
		helpBar:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Background(lipgloss.Color("235")),
	}
}

// NewTreeModel creates a viewer over the given sentences
func NewTreeModel(sentences []TreeSentence) TreeModel {
	m := TreeModel{
		sentences: sentences,
		showTags:  true,
		showProps: true,
		keys:      defaultTreeKeyMap(),
		styles:    defaultTreeStyles(),
	}

	m.buildNodes()
	return m
}

// buildNodes constructs one header per sentence with its tree below
func (m *TreeModel) buildNodes() {
	m.allNodes = nil

	for i := range m.sentences {
		s := &m.sentences[i]
		header := &TreeNode{
			Sentence: s,
			Expanded: len(m.sentences) == 1 || i == 0,
		}
		if s.Tree != nil && s.Tree.Root() > 0 {
			header.Children = append(header.Children, m.buildRelationNode(s, s.Tree.Root(), header, 1))
		}
		if m.showProps {
			for j := range s.Propositions {
				header.Children = append(header.Children, &TreeNode{
					Sentence:    s,
					Proposition: &s.Propositions[j],
					Depth:       1,
					Parent:      header,
				})
			}
		}
		m.allNodes = append(m.allNodes, header)
	}

	m.updateVisibleNodes()
}

func (m *TreeModel) buildRelationNode(s *TreeSentence, address int, parent *TreeNode, depth int) *TreeNode {
	rel := s.Tree.At(address)
	node := &TreeNode{
		Sentence: s,
		Relation: rel,
		Depth:    depth,
		Expanded: true,
		Parent:   parent,
	}
	for _, c := range rel.Deps {
		node.Children = append(node.Children, m.buildRelationNode(s, c, node, depth+1))
	}
	return node
}

func (m *TreeModel) updateVisibleNodes() {
	m.nodes = nil
	for _, node := range m.allNodes {
		m.collectVisible(node)
	}

	// Clamp cursor
	if m.cursor >= len(m.nodes) {
		m.cursor = len(m.nodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *TreeModel) collectVisible(node *TreeNode) {
	m.nodes = append(m.nodes, node)

	if node.Expanded {
		for _, child := range node.Children {
			m.collectVisible(child)
		}
	}
}

// Init initializes the model
func (m TreeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m TreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.nodes)-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.Left):
			if len(m.nodes) > 0 {
				m.nodes[m.cursor].Expanded = false
				m.updateVisibleNodes()
			}

		case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Toggle):
			if len(m.nodes) > 0 {
				m.nodes[m.cursor].Expanded = !m.nodes[m.cursor].Expanded
				m.updateVisibleNodes()
			}

		case key.Matches(msg, m.keys.ToggleTags):
			m.showTags = !m.showTags

		case key.Matches(msg, m.keys.ToggleProps):
			m.showProps = !m.showProps
			m.buildNodes()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-4)
			m.viewport.YPosition = 2
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 4
		}
	}

	return m, nil
}

// View renders the viewer
func (m TreeModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	// Reserve space for footer (detail + help + padding)
	footerHeight := 4
	treeHeight := m.height - footerHeight
	if treeHeight < 5 {
		treeHeight = 5
	}

	var sb strings.Builder

	lines := strings.Split(strings.TrimSuffix(m.renderTree(), "\n"), "\n")

	// Scroll to keep cursor visible
	startIdx := 0
	if m.cursor >= treeHeight {
		startIdx = m.cursor - treeHeight + 1
	}
	endIdx := startIdx + treeHeight
	if endIdx > len(lines) {
		endIdx = len(lines)
	}
	if startIdx < len(lines) {
		sb.WriteString(strings.Join(lines[startIdx:endIdx], "\n"))
	}

	// Pad tree area to maintain consistent height
	for i := endIdx - startIdx; i < treeHeight; i++ {
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	detail := ""
	if len(m.nodes) > 0 && m.cursor < len(m.nodes) {
		detail = m.renderDetailLine(m.nodes[m.cursor])
	}
	sb.WriteString(m.styles.statusBar.Width(m.width).Render(detail))
	sb.WriteString("\n")

	help := fmt.Sprintf(" ↑↓ navigate  ←→ collapse/expand  t tags(%s)  p propositions(%s)  q quit",
		boolToOnOff(m.showTags),
		boolToOnOff(m.showProps),
	)
	sb.WriteString(m.styles.helpBar.Width(m.width).Render(help))

	return sb.String()
}

func (m *TreeModel) renderTree() string {
	var sb strings.Builder
	for i, node := range m.nodes {
		sb.WriteString(m.renderNode(node, i == m.cursor))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m *TreeModel) renderNode(node *TreeNode, selected bool) string {
	var sb strings.Builder

	sb.WriteString(m.styles.tree.Render(strings.Repeat("  ", node.Depth)))

	if node.Parent != nil {
		connector := "├─ "
		siblings := node.Parent.Children
		if siblings[len(siblings)-1] == node {
			connector = "└─ "
		}
		sb.WriteString(m.styles.tree.Render(connector))
	}

	// Expand/collapse indicator
	if len(node.Children) > 0 {
		if node.Expanded {
			sb.WriteString(m.styles.dim.Render("▼ "))
		} else {
			sb.WriteString(m.styles.dim.Render("▶ "))
		}
	} else {
		sb.WriteString("  ")
	}

	var content string
	switch {
	case node.Proposition != nil:
		p := node.Proposition
		content = m.styles.kinds.Kind(p.Kind).Render(fmt.Sprintf("%d %s%s", p.ID, p.Kind, p))
	case node.Relation != nil:
		r := node.Relation
		content = m.styles.rel.Render(r.Rel) + " " + m.styles.word.Render(r.Word)
		if m.showTags {
			content += m.styles.tag.Render("/" + r.Tag)
		}
	default:
		content = m.styles.sentence.Render(fmt.Sprintf("[%s] %s", node.Sentence.ID, node.Sentence.Text))
		if n := len(node.Sentence.Propositions); n > 0 && !m.showProps {
			content += m.styles.dim.Render(fmt.Sprintf(" [%d propositions]", n))
		}
	}

	if selected {
		content = m.styles.selected.Render(content)
	}
	sb.WriteString(content)

	return sb.String()
}

func (m *TreeModel) renderDetailLine(node *TreeNode) string {
	switch {
	case node.Proposition != nil:
		return fmt.Sprintf(" Proposition %d  Kind: %s  Items: %d",
			node.Proposition.ID, node.Proposition.Kind, len(node.Proposition.Content))
	case node.Relation != nil:
		r := node.Relation
		return fmt.Sprintf(" %d %s  Head: %d  Rel: %s  Tag: %s  Dependents: %d",
			r.Address, r.Word, r.Head, r.Rel, r.Tag, len(r.Deps))
	default:
		words := 0
		if node.Sentence.Tree != nil {
			words = node.Sentence.Tree.Len() - 1
		}
		return fmt.Sprintf(" Sentence %s  Nodes: %d  Propositions: %d",
			node.Sentence.ID, words, len(node.Sentence.Propositions))
	}
}

// RunTreeViewer runs the viewer full-screen until the user quits
func (ui *UI) RunTreeViewer(sentences []TreeSentence) error {
	p := tea.NewProgram(NewTreeModel(sentences), tea.WithAltScreen(), tea.WithOutput(ui.Writer))
	_, err := p.Run()
	return err
}

func boolToOnOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
