package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"genietalk/cmd/genie/config"
	"genietalk/cmd/genie/ui"
	"genietalk/internal/document"
	"genietalk/internal/llm"
	"genietalk/internal/persona"
	"genietalk/internal/session"
)

// defaultExportName is where /export writes when no path is given.
const defaultExportName = "genietalk_chatlog.txt"

// handleCommand dispatches slash commands typed into the chat input.
func (m chatModel) handleCommand(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]
	m.textinput.Reset()

	switch cmd {
	case "/quit", "/exit", "/q":
		return m, tea.Quit

	case "/clear":
		m.sess.Clear()
		m.display = []chatMessage{}
		m.viewport.SetContent("")
		return m, nil

	case "/help":
		help := `## Available Commands

| Command | Description |
|---------|-------------|
| /help | Show this help message |
| /persona [id] | List personas, or switch to one |
| /language [name] | List preset languages, or set any language |
| /mode [chat\|agentic] | Show or switch the conversation mode |
| /attach <file>... | Attach PDF or TXT documents for grounded Q&A |
| /detach | Remove the attached document |
| /clear | Clear the conversation (attached document stays) |
| /export [path] | Save the transcript as plain text |
| /key <key> | Set the API key for this session (memory only) |
| /model [name] | Show or switch the model |
| /theme <light\|dark\|auto> | Switch the color theme |
| /status | Show session status |
| /quit, /exit, /q | Exit |

## Tips
- **Enter** to send a message
- **Ctrl+C** or **Esc** to exit
- Use **↑/↓** to scroll history
- In agentic mode the genie plans the goal, labels each step with a tool, and then answers
`
		return m.withReply(help), nil

	case "/persona":
		if len(parts) < 2 {
			var sb strings.Builder
			sb.WriteString("## Personas\n\n")
			for _, e := range persona.Catalog() {
				marker := "  "
				if e.ID == string(m.sess.Persona) {
					marker = "● "
				}
				sb.WriteString(fmt.Sprintf("- %s`%s` **%s**: %s\n", marker, e.ID, e.Name, e.Description))
			}
			sb.WriteString("\nSwitch with `/persona <id>`.")
			return m.withReply(sb.String()), nil
		}
		p, err := persona.Parse(parts[1])
		if err != nil {
			return m.withError(err.Error()), nil
		}
		m.sess.Persona = p
		return m.withReply(fmt.Sprintf("🎭 Persona set to **%s**. %s", p.Name(), p.Description())), nil

	case "/language":
		if len(parts) < 2 {
			reply := fmt.Sprintf("Current language: **%s**\n\nPresets: %s\n\nAny other language works too, e.g. `/language Pirate English`.",
				m.sess.Language, strings.Join(persona.Languages(), ", "))
			return m.withReply(reply), nil
		}
		m.sess.Language = persona.NormalizeLanguage(strings.Join(parts[1:], " "))
		return m.withReply(fmt.Sprintf("🌍 Replies will now be in **%s**.", m.sess.Language)), nil

	case "/mode":
		if len(parts) < 2 {
			return m.withReply(fmt.Sprintf("Current mode: **%s**. Switch with `/mode chat` or `/mode agentic`.", m.sess.Mode)), nil
		}
		mode, err := session.ParseMode(parts[1])
		if err != nil {
			return m.withError(err.Error()), nil
		}
		m.sess.Mode = mode
		if mode == session.ModeAgentic {
			return m.withReply("🪄 Agentic mode on. Give the genie a goal; it will plan the steps, label each with a tool, and synthesize the answer."), nil
		}
		return m.withReply("💬 Chat mode on."), nil

	case "/attach":
		if len(parts) < 2 {
			return m.withReply("Usage: `/attach <file> [more files...]` (PDF or TXT)"), nil
		}
		files, err := readDocuments(parts[1:])
		if err != nil {
			return m.withError(err.Error()), nil
		}
		text, err := document.ExtractAll(context.Background(), files)
		if err != nil {
			return m.withError(err.Error()), nil
		}
		names := make([]string, len(files))
		for i, f := range files {
			names[i] = f.Name
		}
		m.sess.SetDocument(strings.Join(names, ", "), text)
		return m.withReply(fmt.Sprintf("📎 Attached **%s** (%d characters). Questions now use this document; `/detach` removes it.",
			m.sess.DocumentName, len(text))), nil

	case "/detach":
		if !m.sess.HasDocument() {
			return m.withReply("No document attached."), nil
		}
		m.sess.ClearDocument()
		return m.withReply("📎 Document removed."), nil

	case "/export":
		path := defaultExportName
		if len(parts) > 1 {
			path = parts[1]
		}
		text := m.sess.Transcript()
		if text == "" {
			return m.withReply("Nothing to export yet."), nil
		}
		if err := os.WriteFile(path, []byte(text), 0644); err != nil {
			return m.withError(fmt.Sprintf("export failed: %v", err)), nil
		}
		return m.withReply(fmt.Sprintf("💾 Transcript saved to `%s` (%d turns).", path, len(m.sess.History))), nil

	case "/key":
		if len(parts) < 2 {
			return m.withReply("Usage: `/key <api-key>`. The key is kept in memory for this session only; it is never written to disk."), nil
		}
		m.llmCfg.APIKey = parts[1]
		client, err := llm.NewClient(m.llmCfg)
		if err != nil {
			return m.withError(err.Error()), nil
		}
		m.client = client
		m.svc = session.NewService(client, m.logger)
		return m.withReply("🔑 API key updated for this session."), nil

	case "/model":
		if len(parts) < 2 {
			current := m.llmCfg.Model
			if current == "" {
				current = "(provider default)"
			}
			return m.withReply(fmt.Sprintf("Current model: **%s**. Switch with `/model <name>`.", current)), nil
		}
		m.llmCfg.Model = parts[1]
		if m.llmCfg.APIKey != "" {
			client, err := llm.NewClient(m.llmCfg)
			if err != nil {
				return m.withError(err.Error()), nil
			}
			m.client = client
			m.svc = session.NewService(client, m.logger)
		}
		return m.withReply(fmt.Sprintf("🧠 Model set to **%s**.", m.llmCfg.Model)), nil

	case "/theme":
		if len(parts) < 2 {
			return m.withReply("Usage: `/theme <light|dark|auto>`"), nil
		}
		name := strings.ToLower(parts[1])
		if name != "light" && name != "dark" && name != "auto" {
			return m.withError("invalid theme, use light, dark, or auto"), nil
		}
		m.cfg.Theme = name
		m.styles = ui.NewStyles(ui.ThemeFromName(name))
		m.renderer = newMarkdownRenderer(m.styles, m.width-8)
		m.viewport.SetContent(m.renderHistory())
		reply := fmt.Sprintf("🎨 Theme set to **%s**.", name)
		if err := config.Save(m.cfg); err != nil {
			reply += fmt.Sprintf(" (could not save preference: %v)", err)
		}
		return m.withReply(reply), nil

	case "/status":
		return m.withReply(m.renderStatus()), nil

	default:
		return m.withReply(fmt.Sprintf("Unknown command `%s`. Type `/help` for the list.", cmd)), nil
	}
}

// renderStatus builds the /status report.
func (m chatModel) renderStatus() string {
	model := m.llmCfg.Model
	if model == "" {
		model = "(provider default)"
	}
	keyState := "missing"
	if m.llmCfg.APIKey != "" {
		keyState = "configured (memory only)"
	}
	doc := "none"
	if m.sess.HasDocument() {
		doc = fmt.Sprintf("%s (%d characters)", m.sess.DocumentName, len(m.sess.Document))
	}
	configPath, _ := config.ConfigFile()
	logPath, _ := config.LogFile()

	return fmt.Sprintf(`## Session Status

- **Session**: %s
- **Provider**: %s
- **Model**: %s
- **API key**: %s
- **Persona**: %s
- **Language**: %s
- **Mode**: %s
- **Turns**: %d
- **Document**: %s
- **Config**: %s
- **Log**: %s
`, m.sess.ID[:8], m.llmCfg.Provider, model, keyState,
		m.sess.Persona.Name(), m.sess.Language, m.sess.Mode,
		len(m.sess.History), doc, configPath, logPath)
}

// withError appends an error notice to the conversation area. The
// session history is not touched.
func (m chatModel) withError(content string) chatModel {
	m.display = append(m.display, chatMessage{role: "error", content: content, time: time.Now()})
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
	return m
}
