package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Playback
	Toggle    key.Binding
	SpeedDown key.Binding
	SpeedUp   key.Binding

	// Navigation
	FrameBack   key.Binding
	FrameFwd    key.Binding
	SecondBack  key.Binding
	SecondFwd   key.Binding
	FiveBack    key.Binding
	FiveFwd     key.Binding
	Start       key.Binding
	End         key.Binding
	GoTimestamp key.Binding

	// Capture
	Capture   key.Binding
	Delete    key.Binding
	ApplyLut  key.Binding
	Export    key.Binding
	ExportLut key.Binding
	ExportDir key.Binding

	// Files and global
	OpenVideo  key.Binding
	OpenLut    key.Binding
	Quality    key.Binding
	HelpToggle key.Binding
	Quit       key.Binding
	Escape     key.Binding
	Confirm    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		SpeedDown: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "slower"),
		),
		SpeedUp: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "faster"),
		),

		FrameBack: key.NewBinding(
			key.WithKeys(",", "left"),
			key.WithHelp(",/.", "±frame"),
		),
		FrameFwd: key.NewBinding(
			key.WithKeys(".", "right"),
			key.WithHelp(".", "+frame"),
		),
		SecondBack: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h/l", "±1s"),
		),
		SecondFwd: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "+1s"),
		),
		FiveBack: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H/L", "±5s"),
		),
		FiveFwd: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "+5s"),
		),
		Start: key.NewBinding(
			key.WithKeys("0", "home"),
			key.WithHelp("0", "start"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "$", "end"),
			key.WithHelp("G", "end"),
		),
		GoTimestamp: key.NewBinding(
			key.WithKeys("t", ":"),
			key.WithHelp("t", "go to time"),
		),

		Capture: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "capture"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		ApplyLut: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "apply LUT"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		ExportLut: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "export with LUT"),
		),
		ExportDir: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export dir"),
		),
		OpenVideo: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open video"),
		),
		OpenLut: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "choose LUT"),
		),
		Quality: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "quality"),
		),
		HelpToggle: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.FrameBack, k.SecondBack, k.GoTimestamp, k.Capture, k.OpenVideo, k.HelpToggle}
}

// FullHelp returns key bindings for the help modal.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.SpeedDown, k.SpeedUp, k.Quality},
		{k.FrameBack, k.FrameFwd, k.SecondBack, k.SecondFwd, k.FiveBack, k.FiveFwd, k.Start, k.End, k.GoTimestamp},
		{k.Capture, k.Delete, k.ApplyLut, k.Export, k.ExportLut, k.ExportDir},
		{k.OpenVideo, k.OpenLut, k.HelpToggle, k.Quit},
	}
}

// captureHelp returns the bindings offered while a still is captured.
func (k keyMap) captureHelp(vm ViewModel) []key.Binding {
	bindings := []key.Binding{k.Export}
	if vm.ShowApplyLut {
		bindings = append(bindings, k.ApplyLut)
	}
	if vm.ShowExportLut {
		bindings = append(bindings, k.ExportLut)
	}
	return append(bindings, k.Delete, k.HelpToggle)
}
