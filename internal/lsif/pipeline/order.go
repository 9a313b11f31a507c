// # internal/lsif/pipeline/order.go
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"lsifgo/internal/core/errors"
)

// projectOrder computes the dependency-first topological order of the
// project DAG rooted at root, following the façade's declared-references
// relation. A cycle is a fatal CodeCycle error naming the participating
// projects (spec §4.6, §7 "Cycle in project DAG... report which
// projects participate"). Grounded on the teacher's DFS cycle detector
// (internal/engine/graph/detect.go's findCycles), adapted from
// "collect and report" to "detect and abort," since the Pipeline Driver
// cannot proceed without a valid order.
func (d *Driver) projectOrder(ctx context.Context, root string) ([]string, error) {
	if d.cfg.NoProjectReferences {
		return []string{root}, nil
	}

	var order []string
	visited := make(map[string]bool)
	onStack := make(map[string]bool)

	var visit func(project string, path []string) error
	visit = func(project string, path []string) error {
		if onStack[project] {
			cycleStart := 0
			for i, p := range path {
				if p == project {
					cycleStart = i
					break
				}
			}
			cycle := append(append([]string(nil), path[cycleStart:]...), project)
			return errors.New(errors.CodeCycle, fmt.Sprintf("project dependency cycle: %s", strings.Join(cycle, " -> ")))
		}
		if visited[project] {
			return nil
		}

		visited[project] = true
		onStack[project] = true
		path = append(path, project)

		refs, err := d.checker.ProjectReferences(ctx, project)
		if err != nil {
			return errors.Wrap(err, errors.CodeChecker, "list project references").(*errors.DomainError).WithContext(errors.CtxProject, project)
		}
		for _, ref := range refs {
			if err := visit(ref, path); err != nil {
				return err
			}
		}

		onStack[project] = false
		order = append(order, project)
		return nil
	}

	if err := visit(root, nil); err != nil {
		return nil, err
	}
	return order, nil
}
