// Package tui drives the résumé editor from a terminal. Menus and field
// prompts go through a PromptDriver (survey by default) and every change is
// applied through the same controller the HTTP editor uses.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-resumegen/pkg/controller"
	"github.com/goliatone/go-resumegen/pkg/fieldstore"
	"github.com/goliatone/go-resumegen/pkg/model"
	"github.com/goliatone/go-resumegen/pkg/notify"
	"github.com/goliatone/go-resumegen/pkg/render"
	"github.com/goliatone/go-resumegen/pkg/reorder"
)

// Files reads and writes the files named at the import and export prompts.
type Files interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte) error
}

type osFiles struct{}

func (osFiles) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

func (osFiles) WriteFile(name string, data []byte) error { return os.WriteFile(name, data, 0o644) }

type menuAction int

const (
	actionPersonal menuAction = iota
	actionAdd
	actionEdit
	actionRemove
	actionMove
	actionFormat
	actionPreview
	actionImport
	actionExport
	actionClear
	actionQuit
)

var sectionTitles = map[model.SectionKind]string{
	model.KindSkill:         "Skills",
	model.KindExperience:    "Experience",
	model.KindProject:       "Projects",
	model.KindEducation:     "Education",
	model.KindAchievement:   "Achievements",
	model.KindCertification: "Certifications",
	model.KindHobby:         "Hobbies",
}

// Editor is the menu loop over a controller.
type Editor struct {
	ctrl   *controller.Controller
	driver PromptDriver
	text   render.Renderer
	files  Files
	out    io.Writer
	theme  Theme
	logger *zap.Logger
}

// NewEditor constructs an editor for ctrl with defaults (survey driver,
// stdout, local files).
func NewEditor(ctrl *controller.Controller, options ...Option) (*Editor, error) {
	if ctrl == nil {
		return nil, errors.New("tui: controller is required")
	}
	e := &Editor{
		ctrl:   ctrl,
		files:  osFiles{},
		out:    os.Stdout,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if e.driver == nil {
		e.driver = newSurveyDriver(e.out)
	}
	text, err := NewTextRenderer()
	if err != nil {
		return nil, err
	}
	e.text = text
	return e, nil
}

// Run shows the main menu until the user quits. An interrupted prompt
// returns ErrAborted.
func (e *Editor) Run(ctx context.Context) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		action, err := e.menu(ctx)
		if err != nil {
			return err
		}
		if action == actionQuit {
			return nil
		}
		if err := e.dispatch(ctx, action); err != nil {
			if errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled) {
				return err
			}
			e.logger.Debug("tui: action failed", zap.Int("action", int(action)), zap.Error(err))
			if infoErr := e.failure(ctx, err.Error()); infoErr != nil {
				return infoErr
			}
		}
	}
}

func (e *Editor) menu(ctx context.Context) (menuAction, error) {
	format := e.ctrl.Format()
	options := []string{
		"Edit personal details",
		"Add section",
		"Edit section",
		"Remove section",
		"Move section",
		fmt.Sprintf("Switch format (current: %s)", format),
		"Show preview",
		"Import JSON",
		"Export JSON",
		"Clear form",
		"Quit",
	}
	idx, err := e.driver.Select(ctx, SelectConfig{Message: "Resume Builder", Options: options, PageSize: len(options)})
	if err != nil {
		return 0, err
	}
	if idx < 0 || idx >= len(options) {
		return 0, fmt.Errorf("tui: invalid menu choice %d", idx)
	}
	return menuAction(idx), nil
}

func (e *Editor) dispatch(ctx context.Context, action menuAction) error {
	switch action {
	case actionPersonal:
		return e.editPersonal(ctx)
	case actionAdd:
		return e.addSection(ctx)
	case actionEdit:
		inst, err := e.pickInstance(ctx, "Edit which entry?")
		if err != nil {
			return err
		}
		return e.editInstance(ctx, inst)
	case actionRemove:
		return e.removeSection(ctx)
	case actionMove:
		return e.moveSection(ctx)
	case actionFormat:
		u := e.ctrl.ToggleFormat()
		return e.info(ctx, fmt.Sprintf("Format switched to %s", u.Format))
	case actionPreview:
		return e.preview(ctx)
	case actionImport:
		return e.importFile(ctx)
	case actionExport:
		return e.exportFile(ctx)
	case actionClear:
		return e.clear(ctx)
	default:
		return fmt.Errorf("tui: unknown action %d", action)
	}
}

func (e *Editor) editPersonal(ctx context.Context) error {
	visibility := e.ctrl.Visibility()
	personal := e.ctrl.Snapshot().Personal
	for _, spec := range model.PersonalFieldSpecs() {
		if spec.ID == model.FieldLocation && !visibility.Location {
			continue
		}
		for {
			value, err := e.driver.Input(ctx, InputConfig{Message: spec.Label, Default: personal.Get(spec.ID)})
			if err != nil {
				return err
			}
			if msg := e.ctrl.FieldFeedback(spec.ID, value); msg != "" {
				if err := e.failure(ctx, msg); err != nil {
					return err
				}
				continue
			}
			if _, err := e.ctrl.SetField(spec.ID, value); err != nil {
				return err
			}
			break
		}
	}
	return nil
}

func (e *Editor) addSection(ctx context.Context) error {
	kind, err := e.pickKind(ctx, "Add which section?")
	if err != nil {
		return err
	}
	u, err := e.ctrl.AddSection(kind)
	if err != nil {
		return err
	}
	return e.editInstance(ctx, *u.Section)
}

func (e *Editor) editInstance(ctx context.Context, inst fieldstore.Instance) error {
	for _, field := range inst.Fields {
		value, err := e.promptField(ctx, field)
		if err != nil {
			return err
		}
		if value == field.Value {
			continue
		}
		if _, err := e.ctrl.SetField(field.ID, value); err != nil {
			return err
		}
	}
	return nil
}

func (e *Editor) promptField(ctx context.Context, field fieldstore.Field) (string, error) {
	spec := field.Spec
	switch {
	case spec.Control == model.ControlSelect:
		idx, err := e.driver.Select(ctx, SelectConfig{
			Message:      spec.Label,
			Options:      spec.Options,
			DefaultIndex: optionIndex(spec.Options, field.Value),
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(spec.Options) {
			return field.Value, nil
		}
		return spec.Options[idx], nil
	case spec.Lines:
		return e.driver.TextArea(ctx, TextAreaConfig{
			Message: spec.Label,
			Default: field.Value,
			Help:    "One point per line; blank lines are dropped.",
		})
	}

	for {
		value, err := e.driver.Input(ctx, InputConfig{Message: spec.Label, Default: field.Value})
		if err != nil {
			return "", err
		}
		if spec.Key == "grade" {
			if msg := e.gradeMessage(field.ID, value); msg != "" {
				if err := e.failure(ctx, msg); err != nil {
					return "", err
				}
				continue
			}
		}
		return value, nil
	}
}

func (e *Editor) gradeMessage(fieldID, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	grade, err := strconv.ParseFloat(value, 64)
	if err != nil || grade < 0 {
		return "Grade must be a non-negative number"
	}
	limit := e.ctrl.GradeMax(fieldID)
	if limit == "" {
		return ""
	}
	if bound, err := strconv.ParseFloat(limit, 64); err == nil && grade > bound {
		return "Grade must be at most " + limit
	}
	return ""
}

func (e *Editor) removeSection(ctx context.Context) error {
	inst, err := e.pickInstance(ctx, "Remove which entry?")
	if err != nil {
		return err
	}
	ok, err := e.driver.Confirm(ctx, ConfirmConfig{Message: "Remove " + instanceLabel(inst, e.ctrl.Legends(inst.Kind)) + "?"})
	if err != nil || !ok {
		return err
	}
	_, err = e.ctrl.RemoveSection(inst.FieldsetID)
	return err
}

// moveSection lays the kind's other entries out as unit boxes so the chosen
// position maps onto the same pointer rule the browser uses.
func (e *Editor) moveSection(ctx context.Context) error {
	inst, err := e.pickInstance(ctx, "Move which entry?")
	if err != nil {
		return err
	}
	siblings := reorder.ExcludeID(instanceBoxes(e.ctrl.Sections()[inst.Kind]), inst.FieldsetID)
	options := make([]string, len(siblings)+1)
	for i := range options {
		options[i] = "Position " + strconv.Itoa(i+1)
	}
	idx, err := e.driver.Select(ctx, SelectConfig{Message: "Move to", Options: options})
	if err != nil {
		return err
	}
	if idx < 0 {
		return nil
	}
	for i := range siblings {
		siblings[i].Top = float64(i)
		siblings[i].Height = 1
	}
	_, err = e.ctrl.Reorder(inst.Kind, inst.FieldsetID, float64(idx), siblings)
	return err
}

func (e *Editor) preview(ctx context.Context) error {
	out, err := e.text.Render(ctx, e.ctrl.Snapshot(), render.RenderOptions{Format: e.ctrl.Format()})
	if err != nil {
		return err
	}
	return e.driver.Info(ctx, strings.TrimRight(string(out), "\n"))
}

func (e *Editor) importFile(ctx context.Context) error {
	path, err := e.driver.Input(ctx, InputConfig{Message: "JSON file to import"})
	if err != nil {
		return err
	}
	if strings.TrimSpace(path) == "" {
		return nil
	}
	raw, err := e.files.ReadFile(strings.TrimSpace(path))
	if err != nil {
		return fmt.Errorf("tui: read %s: %w", path, err)
	}
	u, err := e.ctrl.Import(raw)
	if toastErr := e.toast(ctx, u.Toast); toastErr != nil {
		return toastErr
	}
	if err != nil {
		e.logger.Info("tui: import rejected", zap.Error(err))
	}
	return nil
}

func (e *Editor) exportFile(ctx context.Context) error {
	name, body, err := e.ctrl.ExportJSON()
	if err != nil {
		return err
	}
	path, err := e.driver.Input(ctx, InputConfig{Message: "Export to", Default: name})
	if err != nil {
		return err
	}
	if strings.TrimSpace(path) == "" {
		path = name
	}
	if err := e.files.WriteFile(strings.TrimSpace(path), body); err != nil {
		return fmt.Errorf("tui: write %s: %w", path, err)
	}
	return e.info(ctx, "Exported to "+strings.TrimSpace(path))
}

func (e *Editor) clear(ctx context.Context) error {
	ok, err := e.driver.Confirm(ctx, ConfirmConfig{Message: "Clear all data?"})
	if err != nil || !ok {
		return err
	}
	u := e.ctrl.Clear()
	return e.toast(ctx, u.Toast)
}

func (e *Editor) pickKind(ctx context.Context, message string) (model.SectionKind, error) {
	format := e.ctrl.Format()
	var kinds []model.SectionKind
	var options []string
	for _, kind := range model.Kinds() {
		if !format.KindVisible(kind) {
			continue
		}
		kinds = append(kinds, kind)
		options = append(options, sectionTitles[kind])
	}
	idx, err := e.driver.Select(ctx, SelectConfig{Message: message, Options: options})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(kinds) {
		return "", fmt.Errorf("tui: invalid section choice %d", idx)
	}
	return kinds[idx], nil
}

func (e *Editor) pickInstance(ctx context.Context, message string) (fieldstore.Instance, error) {
	kind, err := e.pickKind(ctx, "Which section?")
	if err != nil {
		return fieldstore.Instance{}, err
	}
	instances := e.ctrl.Sections()[kind]
	if len(instances) == 0 {
		return fieldstore.Instance{}, fmt.Errorf("%w: %s", ErrNoSections, sectionTitles[kind])
	}
	legends := e.ctrl.Legends(kind)
	options := make([]string, len(instances))
	for i, inst := range instances {
		options[i] = instanceLabel(inst, legends)
	}
	idx, err := e.driver.Select(ctx, SelectConfig{Message: message, Options: options})
	if err != nil {
		return fieldstore.Instance{}, err
	}
	if idx < 0 || idx >= len(instances) {
		return fieldstore.Instance{}, fmt.Errorf("tui: invalid entry choice %d", idx)
	}
	return instances[idx], nil
}

func (e *Editor) toast(ctx context.Context, toast *notify.Toast) error {
	if toast == nil {
		return nil
	}
	if toast.Level == notify.LevelError {
		return e.failure(ctx, toast.Message)
	}
	return e.info(ctx, toast.Message)
}

func (e *Editor) info(ctx context.Context, msg string) error {
	return e.driver.Info(ctx, e.theme.InfoPrefix+msg)
}

func (e *Editor) failure(ctx context.Context, msg string) error {
	return e.driver.Info(ctx, e.theme.ErrorPrefix+msg)
}

func instanceLabel(inst fieldstore.Instance, legends map[string]string) string {
	label := legends[inst.FieldsetID]
	if len(inst.Fields) > 0 {
		if first := strings.TrimSpace(inst.Fields[0].Value); first != "" {
			label += ": " + first
		}
	}
	return label
}

func instanceBoxes(instances []fieldstore.Instance) []reorder.Box {
	out := make([]reorder.Box, len(instances))
	for i, inst := range instances {
		out[i] = reorder.Box{ID: inst.FieldsetID}
	}
	return out
}

func optionIndex(options []string, value string) int {
	if idx := indexOf(options, value); idx >= 0 {
		return idx
	}
	return 0
}
