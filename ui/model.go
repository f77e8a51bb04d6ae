package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"framegrab/applog"
	"framegrab/ui/panels"
	"framegrab/video"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type mode int

const (
	modeNormal mode = iota
	modeHelp
	modeTimestamp
	modeExportDir
	modePickVideo
	modePickLut
)

// TickMsg is one playback tick. Its handle is checked by the clock, so
// ticks armed before a pause or speed change are dropped.
type TickMsg struct {
	Handle video.TickHandle
}

// Renderer draws frames and can change its quality.
type Renderer interface {
	panels.FrameRenderer
	Quality() video.QualityPreset
	CycleQuality() video.QualityPreset
	Reset()
}

// Options are the startup settings of the model.
type Options struct {
	ExportDir string
}

type Model struct {
	width      int
	height     int
	ready      bool
	player     *video.Player
	renderer   Renderer
	preview    *panels.Preview
	properties *panels.Properties
	timeline   *panels.Timeline
	keys       keyMap
	help       help.Model

	mode      mode
	input     textinput.Model
	inputErr  string
	picker    filepicker.Model
	exportDir string
	status    string

	// Vim-style input
	repeatCount int
}

// NewModel wires the panels to player. The player's render callback is
// replaced by the preview panel.
func NewModel(player *video.Player, renderer Renderer, opts Options) Model {
	preview := panels.NewPreview(renderer)
	player.SetRenderFunc(preview.Show)

	exportDir := opts.ExportDir
	if exportDir == "" {
		exportDir = "."
	}

	ti := textinput.New()
	ti.CharLimit = 4096

	return Model{
		player:     player,
		renderer:   renderer,
		preview:    preview,
		properties: panels.NewProperties(renderer),
		timeline:   panels.NewTimeline(),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		input:      ti,
		exportDir:  exportDir,
	}
}

// SetStatus shows status in the footer until the next key press.
func (m *Model) SetStatus(status string) {
	m.status = status
}

func (m Model) Init() tea.Cmd {
	return nil
}

func scheduleTick(h video.TickHandle) tea.Cmd {
	if h.IsZero() {
		return nil
	}
	return tea.Tick(h.Interval, func(time.Time) tea.Msg {
		return TickMsg{Handle: h}
	})
}

// dispatch runs cmd and turns its outcome into a status line and the next
// tick to schedule.
func (m *Model) dispatch(cmd video.Command) tea.Cmd {
	out, err := m.player.Dispatch(cmd)
	if err != nil {
		applog.LogDebug("%T failed: %v", cmd, err)
		m.status = ErrorStyle.Render(describeError(err))
	} else if out.Exported != "" {
		m.status = "Exported: " + out.Exported
	}
	return scheduleTick(out.Tick)
}

// describeError turns a core error into a status line.
func describeError(err error) string {
	var openErr *video.OpenError
	var parseErr *video.ParseError
	var exportErr *video.ExportError
	switch {
	case errors.As(err, &openErr):
		return "Cannot open " + filepath.Base(openErr.Path) + ": " + openErr.Err.Error()
	case errors.As(err, &parseErr):
		return fmt.Sprintf("Not a timestamp: %q", parseErr.Input)
	case errors.As(err, &exportErr):
		return "Export failed: " + exportErr.Err.Error()
	case errors.Is(err, video.ErrNoSession):
		return "No video open"
	case errors.Is(err, video.ErrInvalidRate):
		return "Video has no usable frame rate"
	case errors.Is(err, video.ErrOutOfRange):
		return "Frame out of range"
	}
	return err.Error()
}

func (m *Model) refreshCapture() {
	dims := CalculatePanelDimensions(m.width, m.height)
	m.properties.SetCapture(m.player.Capture().Captured(), dims.PropertiesContentWidth)
}

// takeCount returns the pending repeat count, at least 1, and resets it.
func (m *Model) takeCount() int {
	n := max(m.repeatCount, 1)
	m.repeatCount = 0
	return n
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		dims := CalculatePanelDimensions(m.width, m.height)
		m.preview.SetSize(dims.PreviewContentWidth, dims.PreviewContentHeight)
		m.refreshCapture()
		if m.mode == modePickVideo || m.mode == modePickLut {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(pickerSize(msg.Width, msg.Height))
			return m, cmd
		}
		return m, nil

	case TickMsg:
		return m, m.dispatch(video.Tick{Handle: msg.Handle})

	case tea.MouseMsg:
		if m.mode == modeNormal {
			return m, m.handleMouse(msg)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeHelp:
			return m.handleHelpModalKey(msg)
		case modeTimestamp, modeExportDir:
			return m.handlePromptKey(msg)
		case modePickVideo, modePickLut:
			return m.handlePickerMsg(msg)
		}
		return m.handleKey(msg)
	}

	if m.mode == modePickVideo || m.mode == modePickLut {
		return m.handlePickerMsg(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch msg.String() {
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.repeatCount = m.repeatCount*10 + int(msg.Runes[0]-'0')
		m.status = fmt.Sprintf("%dx", m.repeatCount)
		return m, nil
	case "0":
		if m.repeatCount > 0 {
			m.repeatCount *= 10
			m.status = fmt.Sprintf("%dx", m.repeatCount)
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.player.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		m.repeatCount = 0
		return m, m.dispatch(video.TogglePlay{})

	case key.Matches(msg, m.keys.SpeedDown), key.Matches(msg, m.keys.SpeedUp):
		m.repeatCount = 0
		dir := 1
		if key.Matches(msg, m.keys.SpeedDown) {
			dir = -1
		}
		speed := video.NextSpeed(m.player.Clock().Speed(), dir)
		return m, m.dispatch(video.SetSpeed{Speed: speed})

	case key.Matches(msg, m.keys.FrameBack):
		return m, m.dispatch(video.Step{Frames: -m.takeCount()})
	case key.Matches(msg, m.keys.FrameFwd):
		return m, m.dispatch(video.Step{Frames: m.takeCount()})
	case key.Matches(msg, m.keys.SecondBack):
		return m, m.dispatch(video.StepSeconds{Seconds: -float64(m.takeCount())})
	case key.Matches(msg, m.keys.SecondFwd):
		return m, m.dispatch(video.StepSeconds{Seconds: float64(m.takeCount())})
	case key.Matches(msg, m.keys.FiveBack):
		return m, m.dispatch(video.StepSeconds{Seconds: -5 * float64(m.takeCount())})
	case key.Matches(msg, m.keys.FiveFwd):
		return m, m.dispatch(video.StepSeconds{Seconds: 5 * float64(m.takeCount())})

	case key.Matches(msg, m.keys.Start):
		m.repeatCount = 0
		return m, m.dispatch(video.Seek{Index: 0})
	case key.Matches(msg, m.keys.End):
		m.repeatCount = 0
		return m, m.dispatch(video.SeekEnd{})

	case key.Matches(msg, m.keys.GoTimestamp):
		m.repeatCount = 0
		if !m.player.HasVideo() {
			m.status = describeError(video.ErrNoSession)
			return m, nil
		}
		return m, m.openPrompt(modeTimestamp, m.player.Navigator().Timestamp())

	case key.Matches(msg, m.keys.ExportDir):
		m.repeatCount = 0
		return m, m.openPrompt(modeExportDir, m.exportDir)

	case key.Matches(msg, m.keys.Capture):
		m.repeatCount = 0
		cmd := m.dispatch(video.CaptureFrame{})
		if c := m.player.Capture().Captured(); c != nil && m.status == "" {
			m.status = fmt.Sprintf("Captured frame %d (%.2fs)", c.SourceIndex, c.Timestamp)
		}
		m.refreshCapture()
		return m, cmd

	case key.Matches(msg, m.keys.Delete):
		m.repeatCount = 0
		cmd := m.dispatch(video.DeleteCapture{})
		m.refreshCapture()
		return m, cmd

	case key.Matches(msg, m.keys.ApplyLut):
		m.repeatCount = 0
		vm := Project(m.player)
		if !vm.ShowApplyLut {
			m.status = "Capture a frame and choose a LUT first"
			return m, nil
		}
		cmd := m.dispatch(video.ApplyLut{})
		m.refreshCapture()
		return m, cmd

	case key.Matches(msg, m.keys.Export):
		m.repeatCount = 0
		if !m.player.Capture().HasCapture() {
			m.status = "Nothing captured"
			return m, nil
		}
		return m, m.dispatch(video.ExportOriginal{Dir: m.exportDir})

	case key.Matches(msg, m.keys.ExportLut):
		m.repeatCount = 0
		if !m.player.Capture().HasLutPreview() {
			m.status = "Apply a LUT first"
			return m, nil
		}
		return m, m.dispatch(video.ExportLut{Dir: m.exportDir})

	case key.Matches(msg, m.keys.OpenVideo):
		m.repeatCount = 0
		return m, m.openPicker(modePickVideo)
	case key.Matches(msg, m.keys.OpenLut):
		m.repeatCount = 0
		return m, m.openPicker(modePickLut)

	case key.Matches(msg, m.keys.Quality):
		m.repeatCount = 0
		m.renderer.CycleQuality()
		m.preview.Show(m.player.Navigator().Current())
		m.refreshCapture()
		return m, nil

	case key.Matches(msg, m.keys.HelpToggle):
		m.repeatCount = 0
		m.mode = modeHelp
		return m, nil
	}

	m.repeatCount = 0
	return m, nil
}

// handleMouse seeks when the operator clicks or drags on the scrub bar.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Button != tea.MouseButtonLeft {
		return nil
	}
	if msg.Action != tea.MouseActionPress && msg.Action != tea.MouseActionMotion {
		return nil
	}
	vm := Project(m.player)
	if !vm.CanNavigate {
		return nil
	}

	dims := CalculatePanelDimensions(m.width, m.height)
	x0, y0 := dims.BarOrigin()
	// The marker and cursor lines around the bar also scrub.
	if msg.Y < y0-1 || msg.Y > y0+1 {
		return nil
	}
	barWidth := panels.BarWidth(dims.TimelineContentWidth)
	cell := msg.X - x0
	if cell < 0 || cell >= barWidth {
		return nil
	}

	index := panels.ScrubIndex(cell, barWidth, vm.Total)
	if index == vm.Index {
		return nil
	}
	m.status = ""
	return m.dispatch(video.Seek{Index: index})
}

func (m *Model) openPrompt(md mode, value string) tea.Cmd {
	m.mode = md
	m.inputErr = ""
	m.input.Reset()
	m.input.SetValue(value)
	m.input.CursorEnd()
	switch md {
	case modeTimestamp:
		m.input.Placeholder = "seconds, e.g. 12.5"
	case modeExportDir:
		m.input.Placeholder = "directory"
	}
	return m.input.Focus()
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.closePrompt()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		value := strings.TrimSpace(m.input.Value())
		if m.mode == modeTimestamp {
			out, err := m.player.Dispatch(video.SeekTimestamp{Text: value})
			if err != nil {
				m.inputErr = describeError(err)
				return m, nil
			}
			m.closePrompt()
			return m, scheduleTick(out.Tick)
		}

		dir, err := resolveExportDir(value)
		if err != nil {
			m.inputErr = err.Error()
			return m, nil
		}
		m.exportDir = dir
		m.status = "Exporting to " + dir
		m.closePrompt()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.mode = modeNormal
	m.inputErr = ""
	m.input.Blur()
}

// resolveExportDir expands ~ and checks that dir is an existing directory.
func resolveExportDir(dir string) (string, error) {
	if dir == "" {
		return "", errors.New("directory is empty")
	}
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home: %w", err)
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}

// pickerSize is the size message that makes the picker list fit the modal.
func pickerSize(width, height int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: width, Height: max(8, height/2)}
}

func (m *Model) openPicker(md mode) tea.Cmd {
	fp := filepicker.New()
	paths := m.player.Paths()
	start := paths.VideoPath
	fp.AllowedTypes = video.VideoExtensions
	if md == modePickLut {
		start = paths.LutPath
		fp.AllowedTypes = video.LutExtensions
	}
	fp.CurrentDirectory = pickerStartDir(start)
	fp.ShowPermissions = false
	fp, _ = fp.Update(pickerSize(m.width, m.height))

	m.picker = fp
	m.mode = md
	return m.picker.Init()
}

// pickerStartDir is the directory of the last used file, or the working
// directory.
func pickerStartDir(last string) string {
	if last != "" {
		if info, err := os.Stat(filepath.Dir(last)); err == nil && info.IsDir() {
			return filepath.Dir(last)
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func (m Model) handlePickerMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && (key.Matches(k, m.keys.Escape) || k.String() == "ctrl+c") {
		m.mode = modeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		picked := m.mode
		m.mode = modeNormal
		return m, tea.Batch(cmd, m.selectFile(picked, path))
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.status = ErrorStyle.Render(filepath.Base(path) + " is not a supported file")
	}
	return m, cmd
}

func (m *Model) selectFile(picked mode, path string) tea.Cmd {
	m.status = ""
	if picked == modePickLut {
		cmd := m.dispatch(video.SelectLut{Path: path})
		if m.status == "" {
			m.status = "LUT: " + filepath.Base(path)
		}
		m.refreshCapture()
		return cmd
	}

	m.renderer.Reset()
	m.preview.Clear()
	cmd := m.dispatch(video.Open{Path: path})
	if m.status == "" {
		m.status = "Opened " + filepath.Base(path)
	}
	m.refreshCapture()
	return cmd
}

func (m Model) handleHelpModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q", "enter", " ":
		m.mode = modeNormal
		return m, nil
	}
	return m, nil
}

func renderPanel(content string, width, height int) string {
	innerWidth := width - 2
	innerHeight := height - 2

	lines := strings.Split(content, "\n")
	for len(lines) < innerHeight {
		lines = append(lines, "")
	}
	paddedContent := strings.Join(lines[:max(innerHeight, 0)], "\n")

	return BorderStyle.
		Width(innerWidth).
		Height(innerHeight).
		Render(paddedContent)
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	dims := CalculatePanelDimensions(m.width, m.height)

	if dims.PreviewContentWidth < minPanelWidth || dims.PreviewContentHeight < minPanelHeight {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("Terminal too small")
	}

	vm := Project(m.player)

	previewContent := m.preview.Render(dims.PreviewContentWidth, dims.PreviewContentHeight, vm.HasVideo)
	previewPanel := renderPanel(previewContent, dims.PreviewWidth, dims.PreviewHeight)

	propertiesContent := m.properties.Render(dims.PropertiesContentWidth, dims.PropertiesContentHeight, panels.PropertiesInfo{
		Props:     m.player.Properties(),
		Quality:   m.renderer.Quality(),
		Speed:     vm.Speed,
		LutPath:   vm.LutPath,
		ExportDir: m.exportDir,
	})
	propertiesPanel := renderPanel(propertiesContent, dims.PropertiesWidth, dims.PropertiesHeight)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, previewPanel, propertiesPanel)

	timelineContent := m.timeline.Render(dims.TimelineContentWidth, dims.TimelineContentHeight, m.timelineState(vm))
	timelinePanel := renderPanel(timelineContent, dims.TimelineWidth, dims.TimelineHeight)

	base := lipgloss.JoinVertical(lipgloss.Left, topRow, timelinePanel)

	switch m.mode {
	case modeHelp:
		return m.renderModal("Help", m.help.FullHelpView(m.keys.FullHelp())+"\n\n"+HintStyle.Render("[?] or [Esc] to close"), 70)
	case modeTimestamp:
		return m.renderPrompt("Go to timestamp")
	case modeExportDir:
		return m.renderPrompt("Export directory")
	case modePickVideo:
		return m.renderPicker("Open video")
	case modePickLut:
		return m.renderPicker("Choose LUT")
	}
	return base
}

func (m Model) timelineState(vm ViewModel) panels.TimelineState {
	st := panels.TimelineState{
		Index:        vm.Index,
		Total:        vm.Total,
		Timestamp:    vm.Timestamp,
		Playing:      vm.Playing,
		Speed:        vm.Speed,
		CaptureIndex: -1,
		Status:       m.status,
	}
	if vm.FPS > 0 && vm.Total > 0 {
		st.Duration = float64(vm.Total) / vm.FPS
	}
	if vm.HasCapture {
		st.CaptureIndex = vm.CaptureIndex
		st.Footer = m.help.ShortHelpView(m.keys.captureHelp(vm))
	} else {
		st.Footer = m.help.ShortHelpView(m.keys.ShortHelp())
	}
	return st
}

func (m Model) renderPrompt(title string) string {
	body := m.input.View()
	if m.inputErr != "" {
		body += "\n\n" + ErrorStyle.Render(m.inputErr)
	}
	body += "\n\n" + HintStyle.Render("[enter]: confirm       [esc]: cancel")
	return m.renderModal(title, body, 60)
}

func (m Model) renderPicker(title string) string {
	body := m.picker.View() + "\n\n" + HintStyle.Render("[enter]: select   [h/l]: up/into dir   [esc]: cancel")
	return m.renderModal(title, body, 75)
}

func (m Model) renderModal(title, body string, width int) string {
	modal := ModalStyle.
		Width(min(width, max(m.width-4, 20))).
		Render(ModalTitleStyle.Render(title) + "\n\n" + body)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}
