package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"genietalk/cmd/genie/config"
	"genietalk/cmd/genie/ui"
	"genietalk/internal/llm"
	"genietalk/internal/logging"
	"genietalk/internal/session"
)

// chatModel is the bubbletea model for the interactive chat interface.
type chatModel struct {
	textinput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	styles    ui.Styles
	renderer  *glamour.TermRenderer

	display   []chatMessage
	isLoading bool
	width     int
	height    int
	ready     bool

	cfg    config.Config
	llmCfg llm.Config
	client llm.Client
	svc    *session.Service
	sess   *session.Session
	logger *zap.Logger
}

// chatMessage is a rendered entry in the conversation area. Errors are
// shown here too, without touching the session history.
type chatMessage struct {
	role    string // "user", "assistant", or "error"
	content string
	time    time.Time
}

type (
	responseMsg string
	errorMsg    error
)

// initChat creates the initial chat model. The client may be nil when
// no API key was found; the session still starts and /key recovers it.
func initChat(cfg config.Config, llmCfg llm.Config, client llm.Client, svc *session.Service, sess *session.Session, logger *zap.Logger) chatModel {
	styles := ui.NewStyles(ui.ThemeFromName(cfg.Theme))

	ti := textinput.New()
	ti.Placeholder = "Ask the genie anything... (Enter to send, /help for commands)"
	ti.Focus()
	ti.Prompt = "│ "
	ti.CharLimit = 4096
	ti.Width = 80
	ti.PromptStyle = styles.Prompt
	ti.TextStyle = styles.Body

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	vp := viewport.New(80, 20)

	welcome := fmt.Sprintf("**Welcome to GenieTalk!** You are chatting with the **%s** persona.\n\n"+
		"Type a message, or try `/help` for commands, `/persona` to switch personas, "+
		"`/attach <file>` for document Q&A, and `/mode agentic` for goal planning.",
		sess.Persona.Name())
	if client == nil {
		welcome += "\n\n⚠️ No API key found. Set `GEMINI_API_KEY` or use `/key <key>` to start chatting. The key stays in memory for this session only."
	}

	return chatModel{
		textinput: ti,
		viewport:  vp,
		spinner:   sp,
		styles:    styles,
		renderer:  newMarkdownRenderer(styles, 80),
		display: []chatMessage{
			{role: "assistant", content: welcome, time: time.Now()},
		},
		cfg:    cfg,
		llmCfg: llmCfg,
		client: client,
		svc:    svc,
		sess:   sess,
		logger: logger,
	}
}

// newMarkdownRenderer builds a glamour renderer for the active theme.
func newMarkdownRenderer(styles ui.Styles, width int) *glamour.TermRenderer {
	if styles.Theme.IsDark {
		r, _ := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		return r
	}
	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("light"),
		glamour.WithWordWrap(width),
	)
	return r
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if !m.isLoading {
				return m.handleSubmit()
			}
		}
		if !m.isLoading {
			m.textinput, tiCmd = m.textinput.Update(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4
		footerHeight := 3
		inputHeight := 3

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, msg.Height-headerHeight-footerHeight-inputHeight)
			m.viewport.SetContent(m.renderHistory())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = msg.Height - headerHeight - footerHeight - inputHeight
		}

		m.textinput.Width = msg.Width - 4
		m.renderer = newMarkdownRenderer(m.styles, msg.Width-8)
		m.viewport.SetContent(m.renderHistory())

	case spinner.TickMsg:
		if m.isLoading {
			m.spinner, spCmd = m.spinner.Update(msg)
			return m, spCmd
		}

	case responseMsg:
		m.isLoading = false
		m.display = append(m.display, chatMessage{role: "assistant", content: string(msg), time: time.Now()})
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()

	case errorMsg:
		m.isLoading = false
		m.display = append(m.display, chatMessage{role: "error", content: msg.Error(), time: time.Now()})
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()
	}

	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd, spCmd)
}

// handleSubmit processes the current input line.
func (m chatModel) handleSubmit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textinput.Value())
	if input == "" {
		return m, nil
	}

	if strings.HasPrefix(input, "/") {
		return m.handleCommand(input)
	}

	if m.svc == nil {
		m.textinput.Reset()
		return m.withReply("No API key configured. Use `/key <key>` or restart with `GEMINI_API_KEY` set."), nil
	}

	m.display = append(m.display, chatMessage{role: "user", content: input, time: time.Now()})
	m.textinput.Reset()
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
	m.isLoading = true

	return m, tea.Batch(
		m.spinner.Tick,
		m.processInput(input),
	)
}

// processInput sends the message through the session service.
func (m chatModel) processInput(input string) tea.Cmd {
	sess, svc := m.sess, m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		reply, err := svc.HandleMessage(ctx, sess, input)
		if err != nil {
			return errorMsg(err)
		}
		return responseMsg(reply.Text)
	}
}

// withReply appends an assistant-side notice to the conversation area
// and refreshes the viewport. Used for command output.
func (m chatModel) withReply(content string) chatModel {
	m.display = append(m.display, chatMessage{role: "assistant", content: content, time: time.Now()})
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
	return m
}

// renderHistory renders the conversation area.
func (m chatModel) renderHistory() string {
	var sb strings.Builder

	for _, msg := range m.display {
		switch msg.role {
		case "user":
			userStyle := m.styles.Bold.
				Foreground(m.styles.Theme.Primary).
				MarginTop(1)
			sb.WriteString(userStyle.Render("You") + "\n")
			sb.WriteString(m.styles.UserInput.Render(msg.content))
			sb.WriteString("\n\n")
		case "error":
			sb.WriteString(m.styles.Error.Render("Error: "+msg.content) + "\n\n")
		default:
			assistantStyle := m.styles.Bold.
				Foreground(m.styles.Theme.Accent).
				MarginTop(1)
			sb.WriteString(assistantStyle.Render("🧞 Genie") + "\n")
			sb.WriteString(m.safeRenderMarkdown(msg.content))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// safeRenderMarkdown renders markdown, falling back to plain text if
// the renderer fails.
func (m chatModel) safeRenderMarkdown(content string) string {
	defer func() {
		_ = recover()
	}()

	if m.renderer == nil {
		return content
	}

	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

func (m chatModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := m.renderHeader()

	chatView := m.styles.Content.Render(m.viewport.View())
	if m.isLoading {
		chatView += "\n" + m.styles.Spinner.Render(m.spinner.View()) + " Thinking..."
	}

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Theme.Accent).
		Padding(0, 1)
	inputArea := inputStyle.Render(m.textinput.View())

	footer := m.renderFooter()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		chatView,
		inputArea,
		footer,
	)
}

func (m chatModel) renderHeader() string {
	title := m.styles.Header.Render(" 🧞 GenieTalk ")
	personaBadge := m.styles.Badge.Render(m.sess.Persona.Name())

	var status string
	if m.isLoading {
		status = m.styles.Warning.Render("● Processing")
	} else {
		status = m.styles.Success.Render("● Ready")
	}

	headerLine := lipgloss.JoinHorizontal(
		lipgloss.Center,
		title,
		" ",
		personaBadge,
		"  ",
		status,
	)

	info := fmt.Sprintf(" %s · %s mode · %s", m.sess.Language, m.sess.Mode, m.llmCfg.Provider)
	if m.sess.HasDocument() {
		info += " · 📎 " + m.sess.DocumentName
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		headerLine,
		m.styles.Muted.Render(info),
		m.styles.RenderDivider(m.width),
	)
}

func (m chatModel) renderFooter() string {
	help := m.styles.Muted.Render("Enter: send • /help: commands • /mode: chat|agentic • Ctrl+C: exit")
	return lipgloss.NewStyle().
		MarginTop(1).
		Render(help)
}

// runInteractiveChat starts the interactive chat interface.
func runInteractiveChat() error {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	logPath, err := config.LogFile()
	if err != nil {
		logPath = ""
	}
	chatLogger, err := logging.New(logging.Options{Verbose: verbose, File: logPath})
	if err != nil {
		chatLogger = zap.NewNop()
	}
	defer func() {
		_ = chatLogger.Sync()
	}()

	client, llmCfg, err := buildClient(cfg)
	var svc *session.Service
	if err != nil {
		chatLogger.Warn("starting without a model client", zap.Error(err))
		client = nil
	} else {
		svc = session.NewService(client, chatLogger)
	}

	sess := newSessionFromConfig(cfg)

	chatLogger.Info("chat session started",
		zap.String("session_id", sess.ID),
		zap.String("provider", string(llmCfg.Provider)),
		zap.String("persona", string(sess.Persona)),
		zap.String("language", sess.Language))

	p := tea.NewProgram(
		initChat(cfg, llmCfg, client, svc, sess, chatLogger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat interface error: %w", err)
	}
	return nil
}
