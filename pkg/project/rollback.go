package project

import (
	"sqlsync.dev/sqlsync/pkg/rollback"
	"sqlsync.dev/sqlsync/pkg/statestore"
)

// RollbackPlan computes and applies the rollback planner (§4.10) for a
// target migration name: it returns the ordered list of migrations to
// undo and prunes their snapshots from state, per §8 scenario 5 ("state
// pruned accordingly"). The plan is rejected without mutating anything if
// it would cross a marked migration.
func (p *Project) RollbackPlan(target string) ([]string, error) {
	if err := p.requireConfig(); err != nil {
		return nil, err
	}

	state, err := statestore.LoadFile(p.StatePath())
	if err != nil {
		return nil, err
	}

	plan, err := rollback.Plan(state.Names(), target, state.Marked())
	if err != nil {
		return nil, err
	}

	for _, name := range plan {
		state.Delete(name)
	}
	if err := state.SaveFile(p.StatePath()); err != nil {
		return nil, err
	}

	return plan, nil
}

// RollbackList enumerates every known migration with its protection
// status and author, without mutating state.
func (p *Project) RollbackList() ([]rollback.Entry, error) {
	if err := p.requireConfig(); err != nil {
		return nil, err
	}

	state, err := statestore.LoadFile(p.StatePath())
	if err != nil {
		return nil, err
	}

	return rollback.List(state.Names(), state.Marked(), state.Authors()), nil
}

// RollbackMark marks names as protected, refusing if doing so would
// exceed the configured migrations.maxRollbacks.
func (p *Project) RollbackMark(names []string) error {
	if err := p.requireConfig(); err != nil {
		return err
	}

	state, err := statestore.LoadFile(p.StatePath())
	if err != nil {
		return err
	}

	marked := state.Marked()
	if err := rollback.Mark(marked, names, p.Config.Migrations.MaxRollbacks); err != nil {
		return err
	}
	state.SetMarked(names, true)

	return state.SaveFile(p.StatePath())
}

// RollbackUnmark removes the protected flag from names.
func (p *Project) RollbackUnmark(names []string) error {
	if err := p.requireConfig(); err != nil {
		return err
	}

	state, err := statestore.LoadFile(p.StatePath())
	if err != nil {
		return err
	}

	state.SetMarked(names, false)

	return state.SaveFile(p.StatePath())
}
