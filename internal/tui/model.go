package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/library"
	"folio/internal/router"
)

// Focus identifies where keyboard input routes.
type Focus int

const (
	// FocusList means navigation keys move the active list cursor.
	FocusList Focus = iota
	// FocusSearch means keystrokes go to the catalog search input.
	FocusSearch
	// FocusForm means keystrokes go to the active add/edit form.
	FocusForm
	// FocusConfirm means a delete confirmation prompt is active.
	FocusConfirm
)

// noticeFadeDelay is how long an error notice stays in the status bar.
const noticeFadeDelay = 4 * time.Second

// noticeFadeMsg clears the error notice it was scheduled for. Each notice
// carries its own sequence number, so a fade left over from an earlier
// notice is ignored.
type noticeFadeMsg struct {
	seq int
}

// confirmPrompt asks the user to confirm a destructive action before the
// handler runs. Deletes go through it; everything else applies directly.
type confirmPrompt struct {
	message string
	accept  func()
}

// Model is the top-level bubbletea model for the library browser.
type Model struct {
	manager *library.Manager
	router  *router.Router
	screen  *screen
	theme   Theme
	keys    KeyMap

	// ctx is the session context passed to coordinator operations the
	// model invokes directly.
	ctx context.Context

	width  int
	height int
	ready  bool

	focus        Focus
	cursor       int
	scrollOffset int
	lastMode     mode

	searchInput textinput.Model
	activeForm  *form
	confirm     *confirmPrompt
}

// NewModel creates a Model over an already-wired coordinator. The screen
// must be the same view instance the coordinator renders into.
func NewModel(ctx context.Context, manager *library.Manager, rt *router.Router, scr *screen) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	searchInput := textinput.New()
	searchInput.Placeholder = "Search the catalog"
	searchInput.Prompt = "/ "
	return Model{
		manager:     manager,
		router:      rt,
		screen:      scr,
		theme:       DefaultTheme,
		keys:        DefaultKeyMap,
		ctx:         ctx,
		searchInput: searchInput,
	}
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model. Routes keyboard events based on the
// current focus region.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true

	case noticeFadeMsg:
		if message.seq == model.screen.noticeSeq {
			model.screen.notice = ""
		}

	case tea.KeyMsg:
		switch model.focus {
		case FocusConfirm:
			return model.handleConfirmKeys(message)
		case FocusForm:
			return model.handleFormKeys(message)
		case FocusSearch:
			return model.handleSearchKeys(message)
		default:
			return model.handleListKeys(message)
		}
	}
	return model, nil
}

func (model Model) handleListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Up):
		model.moveCursor(-1)

	case key.Matches(message, model.keys.Down):
		model.moveCursor(1)

	case key.Matches(message, model.keys.Home):
		model.cursor = 0
		model.scrollOffset = 0

	case key.Matches(message, model.keys.End):
		model.cursor = model.screen.listLength() - 1
		model.clampCursor()

	case key.Matches(message, model.keys.Search):
		model.focus = FocusSearch
		model.searchInput.SetValue("")
		model.searchInput.Focus()

	default:
		switch model.screen.mode {
		case modeLibrary:
			return model.handleLibraryKeys(message)
		case modeSearch:
			return model.handleSearchResultKeys(message)
		case modeDetail:
			return model.handleDetailListKeys(message)
		}
	}
	return model, nil
}

func (model Model) handleLibraryKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Open):
		if book := model.selectedBook(); book != nil {
			model.screen.libraryHandlers.OnNavigate(router.BookFragment(book.ID))
			return model, model.afterAction()
		}

	case key.Matches(message, model.keys.Add):
		model.activeForm = newBookForm(formAddBook, "", "", "")
		model.focus = FocusForm

	case key.Matches(message, model.keys.Edit):
		if book := model.selectedBook(); book != nil {
			model.activeForm = newBookForm(formEditBook, book.ID, book.Title, book.Author)
			model.focus = FocusForm
		}

	case key.Matches(message, model.keys.Delete):
		if book := model.selectedBook(); book != nil {
			id := book.ID
			model.confirm = &confirmPrompt{
				message: fmt.Sprintf("Delete %q and its annotations?", book.Title),
				accept:  func() { model.screen.libraryHandlers.OnDeleteBook(id) },
			}
			model.focus = FocusConfirm
		}

	case key.Matches(message, model.keys.Reload):
		_ = model.manager.LoadAll(model.ctx)
		return model, model.afterAction()
	}
	return model, nil
}

func (model Model) handleSearchResultKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Open), key.Matches(message, model.keys.Add):
		if result := model.selectedResult(); result != nil {
			model.screen.searchHandlers.OnAddBook(*result)
			model.searchInput.SetValue("")
			return model, model.afterAction()
		}

	case key.Matches(message, model.keys.Back):
		model.router.Navigate(router.FragmentLibrary)
		return model, model.afterAction()
	}
	return model, nil
}

func (model Model) handleDetailListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Back):
		model.leaveDetail()
		return model, model.afterAction()

	case key.Matches(message, model.keys.Note):
		if model.screen.book != nil {
			model.activeForm = newAnnotationForm(formAddAnnotation, model.screen.book.ID, "", "", "")
			model.focus = FocusForm
		}

	case key.Matches(message, model.keys.Edit):
		if ann := model.selectedAnnotation(); ann != nil {
			model.activeForm = newAnnotationForm(formEditAnnotation, ann.ID, ann.Text, ann.Page, string(ann.Type))
			model.focus = FocusForm
		}

	case key.Matches(message, model.keys.Delete):
		if ann := model.selectedAnnotation(); ann != nil {
			id := ann.ID
			model.confirm = &confirmPrompt{
				message: "Delete this annotation?",
				accept:  func() { model.screen.detailHandlers.OnDeleteAnnotation(id) },
			}
			model.focus = FocusConfirm
		}
	}
	return model, nil
}

func (model Model) handleSearchKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.String() {
	case "esc":
		model.searchInput.Blur()
		model.focus = FocusList
		return model, nil
	case "enter":
		query := model.searchInput.Value()
		model.searchInput.Blur()
		model.focus = FocusList
		_ = model.manager.OnSearchSubmit(model.ctx, query)
		return model, model.afterAction()
	}
	var cmd tea.Cmd
	model.searchInput, cmd = model.searchInput.Update(message)
	return model, cmd
}

func (model Model) handleConfirmKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	prompt := model.confirm
	switch message.String() {
	case "y", "Y":
		model.confirm = nil
		model.focus = FocusList
		if prompt != nil && prompt.accept != nil {
			prompt.accept()
		}
		return model, model.afterAction()
	case "n", "N", "esc":
		model.confirm = nil
		model.focus = FocusList
	}
	return model, nil
}

func (model Model) handleFormKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := model.activeForm
	if f == nil {
		model.focus = FocusList
		return model, nil
	}
	switch message.String() {
	case "esc":
		model.activeForm = nil
		model.focus = FocusList
		return model, nil
	case "tab":
		f.focusNext()
		return model, nil
	case "shift+tab":
		f.focusPrev()
		return model, nil
	case "ctrl+d":
		return model, model.submitForm()
	case "enter":
		// Enter inside the textarea inserts a newline; anywhere else it
		// submits the form.
		if !f.textFocused() {
			return model, model.submitForm()
		}
	}
	return model, f.handleInput(message)
}

func (model *Model) submitForm() tea.Cmd {
	f := model.activeForm
	model.activeForm = nil
	model.focus = FocusList
	switch f.kind {
	case formAddBook:
		model.screen.libraryHandlers.OnAddBook(library.Candidate{
			Title:  f.fieldValue("Title"),
			Author: f.fieldValue("Author"),
		})
	case formEditBook:
		model.screen.libraryHandlers.OnEditBook(f.targetID, f.fieldValue("Title"), f.fieldValue("Author"))
	case formAddAnnotation:
		typ, err := library.ParseAnnotationType(f.fieldValue("Type"))
		if err != nil {
			model.activeForm = f
			model.focus = FocusForm
			model.screen.ShowError("Annotation type must be quote, note, or insight.")
			return model.afterAction()
		}
		model.screen.detailHandlers.OnAddAnnotation(strings.TrimSpace(f.text.Value()), f.fieldValue("Page"), typ)
	case formEditAnnotation:
		model.screen.detailHandlers.OnEditAnnotation(f.targetID, strings.TrimSpace(f.text.Value()), f.fieldValue("Page"))
	}
	return model.afterAction()
}

// leaveDetail returns from the detail view, preferring route history so a
// search-to-detail hop rewinds correctly.
func (model *Model) leaveDetail() {
	model.router.Back()
	if strings.HasPrefix(model.router.Current(), router.RouteBook) {
		model.router.Navigate(router.FragmentLibrary)
	}
}

// afterAction reconciles cursor state with whatever the coordinator just
// rendered and schedules a fade when an error notice is showing.
func (model *Model) afterAction() tea.Cmd {
	if model.screen.mode != model.lastMode {
		model.lastMode = model.screen.mode
		model.cursor = 0
		model.scrollOffset = 0
	}
	model.clampCursor()
	if model.screen.notice != "" {
		seq := model.screen.noticeSeq
		return tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
			return noticeFadeMsg{seq: seq}
		})
	}
	return nil
}

func (model *Model) moveCursor(delta int) {
	model.cursor += delta
	model.clampCursor()
}

func (model *Model) clampCursor() {
	length := model.screen.listLength()
	if model.cursor >= length {
		model.cursor = length - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
	visible := model.visibleRows()
	if visible <= 0 {
		return
	}
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+visible {
		model.scrollOffset = model.cursor - visible + 1
	}
	if model.scrollOffset < 0 {
		model.scrollOffset = 0
	}
}

// visibleRows is the number of list rows that fit between the header and
// the status bar. Detail views reserve extra rows for the metadata block.
func (model *Model) visibleRows() int {
	rows := model.height - 4
	if model.screen.mode == modeDetail {
		rows -= 7
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (model *Model) selectedBook() *library.Book {
	if model.cursor < 0 || model.cursor >= len(model.screen.books) {
		return nil
	}
	return model.screen.books[model.cursor]
}

func (model *Model) selectedResult() *library.Candidate {
	if model.cursor < 0 || model.cursor >= len(model.screen.results) {
		return nil
	}
	return &model.screen.results[model.cursor]
}

func (model *Model) selectedAnnotation() *library.Annotation {
	book := model.screen.book
	if book == nil || model.cursor < 0 || model.cursor >= len(book.Annotations) {
		return nil
	}
	return &book.Annotations[model.cursor]
}
