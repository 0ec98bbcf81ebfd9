package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/leengari/rabbet/internal/domain/schema"
	"github.com/leengari/rabbet/internal/executor"
	"github.com/leengari/rabbet/internal/parser"
	"github.com/leengari/rabbet/internal/parser/ast"
	"github.com/leengari/rabbet/internal/parser/lexer"
	"github.com/leengari/rabbet/internal/plan"
	"github.com/leengari/rabbet/internal/planner"
	"github.com/leengari/rabbet/internal/query/binding"
	"github.com/leengari/rabbet/internal/query/operations/join"
)

// Engine is the main entry point: it loads tables, runs join pipelines and queries
type Engine struct {
	db               *schema.Database
	reader           binding.TableReader
	observers        []Observer // Observers for lifecycle events
	legacyProvenance bool
}

// Option configures an Engine
type Option func(*Engine)

// WithLegacyProvenance makes join results keep the left operand's label
func WithLegacyProvenance(enabled bool) Option {
	return func(e *Engine) { e.legacyProvenance = enabled }
}

// New creates a new Engine reading tables through reader
func New(reader binding.TableReader, opts ...Option) *Engine {
	e := &Engine{
		db:        schema.NewDatabase("rabbet"),
		reader:    reader,
		observers: make([]Observer, 0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// JoinRequest describes one join invocation
type JoinRequest struct {
	Paths []string // table sources, "-" for stdin
	Names []string // labels; empty means T1..TN
	On    []string // join column specifications
	Type  join.JoinType
}

// RunJoin labels, binds and folds the requested tables
func (e *Engine) RunJoin(req JoinRequest) (*schema.Table, error) {
	runID := uuid.NewString()

	labels, err := binding.AssignLabels(req.Paths, req.Names)
	if err != nil {
		return nil, err
	}
	keys := binding.ParseOnSpecs(req.On)

	// 1. Bind
	e.notify(Event{Type: EventBindStart, RunID: runID, Data: labels})
	tables, err := binding.Bind(req.Paths, labels, keys, e.reader)
	if err != nil {
		return nil, err
	}
	e.notify(Event{Type: EventBindEnd, RunID: runID, Data: len(tables)})

	// 2. Fold
	opts := []join.Option{
		join.WithStepObserver(func(s join.StepInfo) {
			if e.legacyProvenance && s.Type == join.JoinTypeRight {
				slog.Warn("right join result keeps the left operand's label and join columns",
					slog.String("run_id", runID),
					slog.String("left", s.Left),
					slog.String("right", s.Right),
				)
			}
			e.notify(Event{Type: EventJoinStep, RunID: runID, Data: s})
		}),
	}
	if e.legacyProvenance {
		opts = append(opts, join.WithLegacyProvenance())
	}

	result, err := join.Fold(tables, req.Type, opts...)
	if err != nil {
		return nil, err
	}
	e.notify(Event{Type: EventJoinEnd, RunID: runID, Data: map[string]any{
		"label": result.Label,
		"rows":  result.Height(),
	}})

	return result, nil
}

// Load reads tables into the catalog under their labels
func (e *Engine) Load(paths, names []string) error {
	labels, err := binding.AssignLabels(paths, names)
	if err != nil {
		return err
	}
	tables, err := e.load(uuid.NewString(), paths, labels)
	if err != nil {
		return err
	}
	for _, t := range tables {
		if err := e.db.Register(t); err != nil {
			return err
		}
	}
	return nil
}

// Read loads a single source without registering it
func (e *Engine) Read(path string) (*schema.Table, error) {
	tables, err := e.load(uuid.NewString(), []string{path}, []string{"T1"})
	if err != nil {
		return nil, err
	}
	return tables[0], nil
}

func (e *Engine) load(runID string, paths, labels []string) ([]*schema.Table, error) {
	e.notify(Event{Type: EventBindStart, RunID: runID, Data: labels})
	tables, err := binding.Load(paths, labels, e.reader)
	if err != nil {
		return nil, err
	}
	e.notify(Event{Type: EventBindEnd, RunID: runID, Data: len(tables)})
	return tables, nil
}

// Tables returns the catalog tables in label order
func (e *Engine) Tables() []*schema.Table {
	var tables []*schema.Table
	for _, label := range e.db.Labels() {
		tables = append(tables, e.db.Tables[label])
	}
	return tables
}

// Execute processes a SQL string and returns the result
func (e *Engine) Execute(sql string) (*executor.Result, error) {
	runID := uuid.NewString()

	planNode, err := e.plan(runID, sql)
	if err != nil {
		return nil, err
	}

	e.notify(Event{Type: EventExecStart, RunID: runID})
	result, err := executor.Execute(planNode, e.db)
	if err != nil {
		return nil, fmt.Errorf("execution error: %w", err)
	}
	e.notify(Event{Type: EventExecEnd, RunID: runID, Data: map[string]any{
		"rows_returned": result.Table.Height(),
	}})

	return result, nil
}

// Explain returns the plan tree of a SQL string without executing it
func (e *Engine) Explain(sql string) (string, error) {
	planNode, err := e.plan(uuid.NewString(), sql)
	if err != nil {
		return "", err
	}
	return plan.PrintTree(planNode), nil
}

func (e *Engine) plan(runID, sql string) (plan.Node, error) {
	// 1. Tokenize
	e.notify(Event{Type: EventLexStart, RunID: runID, Data: sql})
	tokens, err := lexer.Tokenize(sql)
	if err != nil {
		return nil, fmt.Errorf("lexer error: %w", err)
	}
	e.notify(Event{Type: EventLexEnd, RunID: runID, Data: len(tokens)})

	// 2. Parse
	e.notify(Event{Type: EventParseStart, RunID: runID})
	stmt, err := parser.New(tokens).Parse()
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	e.notify(Event{Type: EventParseEnd, RunID: runID, Data: describeStatement(stmt)})

	// 3. Plan
	e.notify(Event{Type: EventPlanStart, RunID: runID})
	planNode, err := planner.Plan(stmt, e.db)
	if err != nil {
		return nil, fmt.Errorf("planning error: %w", err)
	}
	e.notify(Event{Type: EventPlanEnd, RunID: runID, Data: plan.CountNodes(planNode)})

	return planNode, nil
}

func describeStatement(stmt ast.Statement) string {
	return fmt.Sprintf("%T", stmt)
}

// AddObserver registers an observer to receive lifecycle events
func (e *Engine) AddObserver(observer Observer) {
	e.observers = append(e.observers, observer)
}

// RemoveObserver unregisters an observer
func (e *Engine) RemoveObserver(observer Observer) {
	for i, o := range e.observers {
		if o == observer {
			e.observers = append(e.observers[:i], e.observers[i+1:]...)
			return
		}
	}
}

// notify sends an event to all registered observers
func (e *Engine) notify(event Event) {
	event.Timestamp = time.Now()
	for _, observer := range e.observers {
		observer.OnEvent(event)
	}
}

