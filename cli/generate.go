package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/list"
	"github.com/drafterhq/drafter/core"
	"github.com/drafterhq/drafter/fs"
	"github.com/drafterhq/drafter/llm"
	"github.com/drafterhq/drafter/logger"
)

type state int

const (
	Input state = iota
	ApiKey
	Initializing
	Processing
	Finished
)

type generateCmdModel struct {
	textInput      textinput.Model
	spinner        spinner.Model
	state          state
	request        *core.Request
	completedSteps []core.StepType
	engine         *Engine
	engineCtx      context.Context
	engineCancel   context.CancelFunc
	publisher      *CliStepPublisher
	logger         logger.Logger
	fs             *fs.FileSystem
}

func newGenerateModel(req *core.Request) (generateCmdModel, error) {
	ti := textinput.New()
	ti.Placeholder = "Describe your build..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 80

	logger.InitLogger()
	l := logger.GetLogger()
	l.Debug("Initializing Drafter CLI")
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("202"))

	osFs := fs.NewOsFileSystem()
	publisher := NewCliStepPublisher(l)
	engine, err := NewBuildEngine(publisher, l, 1, osFs)
	if err != nil {
		return generateCmdModel{}, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	m := generateCmdModel{
		textInput:    ti,
		spinner:      s,
		state:        Input,
		logger:       l,
		request:      req,
		fs:           osFs,
		engine:       engine,
		engineCtx:    ctx,
		engineCancel: cancel,
		publisher:    publisher,
	}
	if req.BuildDescription != "" {
		// Description came from the command line; skip the input prompt.
		if m.needsApiKey() {
			m.enterApiKeyState()
		} else {
			m.state = Initializing
		}
	}
	engine.Start(ctx)
	return m, nil
}

func (m generateCmdModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m generateCmdModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.state {
	case Finished:
		return m, tea.Quit
	case Initializing:
		m.state = Processing
		return m, tea.Batch(m.spinner.Tick, m.handleBuildGeneration())
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case core.StepType:
		return m.handleStep(msg)
	case error:
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFBA08"))
		return m, tea.Sequence(tea.Printf("Error: %s", errorStyle.Render(msg.Error())), tea.Quit)
	default:
		if m.state == Processing {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m generateCmdModel) View() string {
	switch m.state {
	case Input:
		return fmt.Sprintf(
			"What do you want to build?\n\n%s\n\n%s",
			m.textInput.View(),
			"(press enter to generate or esc to quit)",
		)
	case ApiKey:
		p, _ := llm.LookupProvider(m.request.Provider)
		return fmt.Sprintf(
			"Enter your %s API key (or set %s):\n\n%s\n\n%s",
			m.request.Provider, p.KeyEnvVar,
			m.textInput.View(),
			"(press enter to continue or esc to quit)",
		)
	case Initializing:
		return fmt.Sprintf("%s Initializing", m.spinner.View())
	case Processing:
		steps := []struct {
			present string
			past    string
		}{
			{"Generating blueprint.", "Generated blueprint."},
			{"Decoding blueprint.", "Decoded blueprint."},
			{"Materializing files.", "Materialized files."},
			{"Done.", "Done."},
		}

		enumerator := func(l list.Items, i int) string {
			var e string
			if i < len(m.completedSteps) {
				checkStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
				e = checkStyle.Render("✓")
			} else if i == len(m.completedSteps) {
				e = m.spinner.View()
			}
			return e
		}

		l := list.New().Enumerator(enumerator)
		for i, step := range steps {
			if i < len(m.completedSteps) {
				l.Item(step.past)
			} else if i == len(m.completedSteps) {
				l.Item(step.present)
			}
		}
		return fmt.Sprint(l)
	case Finished:
		return "Files generated successfully!"
	default:
		m.logger.Error("An error occurred")
		return "An error occurred."
	}
}

func (m *generateCmdModel) Shutdown() {
	m.engineCancel()
	m.engine.Shutdown(5 * time.Second)
}

func (m generateCmdModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m.handleKeyEnter()
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m generateCmdModel) handleKeyEnter() (tea.Model, tea.Cmd) {
	switch m.state {
	case Input:
		v := m.textInput.Value()
		if v == "" {
			placeholderStyle := lipgloss.NewStyle().Faint(true)
			message := placeholderStyle.Render("No build description entered. Exiting...")
			return m, tea.Sequence(tea.Printf("%s", message), tea.Quit)
		}
		m.request.BuildDescription = v
		if m.needsApiKey() {
			m.enterApiKeyState()
			return m, textinput.Blink
		}
		m.state = Initializing
		return m, m.spinner.Tick
	case ApiKey:
		v := m.textInput.Value()
		if v == "" {
			placeholderStyle := lipgloss.NewStyle().Faint(true)
			message := placeholderStyle.Render("No API key entered. Exiting...")
			return m, tea.Sequence(tea.Printf("%s", message), tea.Quit)
		}
		m.request.APIKey = v
		m.state = Initializing
		return m, m.spinner.Tick
	default:
		return m, nil
	}
}

func (m *generateCmdModel) needsApiKey() bool {
	p, err := llm.LookupProvider(m.request.Provider)
	if err != nil || !p.NeedsKey {
		return false
	}
	return llm.ResolveAPIKey(m.request.LlmConfig()) == ""
}

func (m *generateCmdModel) enterApiKeyState() {
	m.state = ApiKey
	m.textInput.Reset()
	m.textInput.Placeholder = "sk-..."
	m.textInput.EchoMode = textinput.EchoPassword
}

func (m generateCmdModel) handleBuildGeneration() tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			m.engine.AddRequest(m.request)
			return nil
		},
		m.waitForActivity(),
	)
}

// waitForActivity blocks until the publisher reports a completed step or an
// error from the pipeline.
func (m generateCmdModel) waitForActivity() tea.Cmd {
	return func() tea.Msg {
		select {
		case step := <-m.publisher.stepChan:
			return step
		case err := <-m.publisher.errorChan:
			return err
		}
	}
}

func (m generateCmdModel) handleStep(step core.StepType) (tea.Model, tea.Cmd) {
	m.completedSteps = append(m.completedSteps, step)
	if step == core.Done {
		m.state = Finished
		return m, tea.Quit
	}
	return m, m.waitForActivity()
}
