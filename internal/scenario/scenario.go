package scenario

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-yaml/ast"
	"github.com/maruel/natural"
	"github.com/seqview/seqview/internal/utils"
)

const (
	MAIN_SEQUENCE_NAME = "main"
)

var (
	ErrInvalidScenario = errors.New("invalid scenario")

	scenarioKeys = []string{"name", "description", "steps"}
	stepKeys     = []string{"op", "on", "as", "index", "from", "to", "value", "values", "with", "length", "expect", "error"}
)

// A Scenario is a named list of steps executed against a fresh sequence named 'main'.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Path        string `json:"path,omitempty"`
	Steps       []Step `json:"-"`
}

// A Step is an operation on a sequence or a cursor, optionally followed by a check of its result or of its error.
type Step struct {
	Op string
	On string //name of the targeted sequence or cursor
	As string //name bound to the sequence or cursor created by the step

	Index    int
	HasIndex bool
	From, To int

	Value    any
	HasValue bool

	//collection argument: With names a sequence, Values is used otherwise.
	//NilCollection is true if 'values' is explicitly null.
	Values        []any
	With          string
	NilCollection bool

	Length    int
	HasLength bool

	Expect    any
	HasExpect bool
	Error     string

	Line int
}

// Parse parses the scenarios contained in a YAML stream, one scenario per document.
func Parse(content string, path string) ([]*Scenario, error) {
	documents, err := parseYamlDocuments(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidScenario, path, err)
	}

	var scenarios []*Scenario
	for _, doc := range documents {
		sc, err := parseScenario(doc)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidScenario, path, err)
		}
		sc.Path = path
		scenarios = append(scenarios, sc)
	}

	if len(scenarios) == 0 {
		return nil, fmt.Errorf("%w: %s: no scenario", ErrInvalidScenario, path)
	}
	return scenarios, nil
}

// LoadFile reads and parses the scenarios of a YAML file.
func LoadFile(path string) ([]*Scenario, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(content), path)
}

// LoadFiles loads all the given files, the errors of all files are combined.
func LoadFiles(paths []string) ([]*Scenario, error) {
	var scenarios []*Scenario
	var errs []error

	for _, path := range paths {
		loaded, err := LoadFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scenarios = append(scenarios, loaded...)
	}

	return scenarios, utils.CombineErrors(errs...)
}

func parseScenario(doc ast.Node) (*Scenario, error) {
	value, err := convertYamlNode(doc)
	if err != nil {
		return nil, err
	}

	mapping, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("a scenario should be a mapping (line %d)", lineOf(doc))
	}
	if err := checkKeys(mapping, scenarioKeys); err != nil {
		return nil, err
	}

	sc := &Scenario{}
	if sc.Name, err = getString(mapping, "name"); err != nil {
		return nil, err
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("missing scenario name (line %d)", lineOf(doc))
	}
	if sc.Description, err = getString(mapping, "description"); err != nil {
		return nil, err
	}

	steps, ok := mapping["steps"].([]any)
	if !ok || len(steps) == 0 {
		return nil, fmt.Errorf("scenario %q: 'steps' should be a non empty list", sc.Name)
	}

	lines := sequenceItemLines(doc, "steps")
	for i, rawStep := range steps {
		line := 0
		if i < len(lines) {
			line = lines[i]
		}

		stepMapping, ok := rawStep.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("scenario %q: step %d (line %d) should be a mapping", sc.Name, i+1, line)
		}

		step, err := parseStep(stepMapping)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: step %d (line %d): %w", sc.Name, i+1, line, err)
		}
		step.Line = line
		sc.Steps = append(sc.Steps, step)
	}

	if err := checkNames(sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func parseStep(mapping map[string]any) (step Step, err error) {
	if err := checkKeys(mapping, stepKeys); err != nil {
		return Step{}, err
	}

	if step.Op, err = getString(mapping, "op"); err != nil {
		return Step{}, err
	}
	op, ok := operations[step.Op]
	if !ok {
		return Step{}, fmt.Errorf("unknown operation %q", step.Op)
	}

	if step.On, err = getString(mapping, "on"); err != nil {
		return Step{}, err
	}
	if step.As, err = getString(mapping, "as"); err != nil {
		return Step{}, err
	}
	if step.With, err = getString(mapping, "with"); err != nil {
		return Step{}, err
	}
	if step.Error, err = getString(mapping, "error"); err != nil {
		return Step{}, err
	}
	if step.Error != "" {
		if _, ok := errorKinds[step.Error]; !ok {
			return Step{}, fmt.Errorf("unknown error kind %q, valid kinds are: %s", step.Error, strings.Join(ErrorKindNames(), ", "))
		}
	}

	if step.Index, step.HasIndex, err = getInt(mapping, "index"); err != nil {
		return Step{}, err
	}
	if step.From, _, err = getInt(mapping, "from"); err != nil {
		return Step{}, err
	}
	if step.To, _, err = getInt(mapping, "to"); err != nil {
		return Step{}, err
	}
	if step.Length, step.HasLength, err = getInt(mapping, "length"); err != nil {
		return Step{}, err
	}

	step.Value, step.HasValue = mapping["value"]
	step.Expect, step.HasExpect = mapping["expect"]

	if values, ok := mapping["values"]; ok {
		switch v := values.(type) {
		case nil:
			step.NilCollection = true
		case []any:
			step.Values = v
		default:
			return Step{}, errors.New("'values' should be a list or null")
		}
	}

	if err := op.validate(step, mapping); err != nil {
		return Step{}, fmt.Errorf("%s: %w", step.Op, err)
	}
	return step, nil
}

// checkNames checks that every step targets a sequence or a cursor declared by a previous step.
func checkNames(sc *Scenario) error {
	sequences := map[string]bool{MAIN_SEQUENCE_NAME: true}
	cursors := map[string]bool{}

	for i, step := range sc.Steps {
		op := operations[step.Op]
		target := step.target()

		switch op.target {
		case sequenceTarget:
			if !sequences[target] {
				return fmt.Errorf("scenario %q: step %d (line %d): unknown sequence %q", sc.Name, i+1, step.Line, target)
			}
		case cursorTarget:
			if !cursors[target] {
				return fmt.Errorf("scenario %q: step %d (line %d): unknown cursor %q", sc.Name, i+1, step.Line, target)
			}
		}

		if step.With != "" && !sequences[step.With] {
			return fmt.Errorf("scenario %q: step %d (line %d): unknown sequence %q", sc.Name, i+1, step.Line, step.With)
		}

		switch op.declares {
		case sequenceTarget:
			sequences[step.As] = true
		case cursorTarget:
			cursors[step.As] = true
		}
	}
	return nil
}

// target returns the name of the sequence or cursor targeted by the step.
func (s Step) target() string {
	if s.On == "" {
		return MAIN_SEQUENCE_NAME
	}
	return s.On
}

func checkKeys(mapping map[string]any, allowed []string) error {
	var unknown []string
	for key := range mapping {
		if !slices.Contains(allowed, key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	slices.SortFunc(unknown, strings.Compare)
	return fmt.Errorf("unknown key(s): %s", strings.Join(unknown, ", "))
}

func getString(mapping map[string]any, key string) (string, error) {
	value, ok := mapping[key]
	if !ok || value == nil {
		return "", nil
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("'%s' should be a string", key)
	}
	return s, nil
}

func getInt(mapping map[string]any, key string) (int, bool, error) {
	value, ok := mapping[key]
	if !ok {
		return 0, false, nil
	}
	i, ok := value.(int)
	if !ok {
		return 0, false, fmt.Errorf("'%s' should be an integer", key)
	}
	return i, true, nil
}

// sortNaturally sorts paths in natural order (file2 before file10).
func sortNaturally(paths []string) {
	slices.SortFunc(paths, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		default:
			return 0
		}
	})
}
