package attendance

import (
	"context"

	attendanceerrors "hr-portal/internal/attendance/errors"
	"hr-portal/internal/employee"
	"hr-portal/internal/leave"

	"golang.org/x/sync/errgroup"
)

// batchWorkerLimit bounds the recompute fan-out. Each employee's summary
// depends only on that employee's own records, so workers share nothing.
const batchWorkerLimit = 8

// BatchResult reports one roster member's outcome. A malformed record sets
// Err and leaves Summary nil; it never fails the rest of the batch.
type BatchResult struct {
	EmployeeCode string
	Summary      *Summary
	Err          error
}

// RecomputeAll reconciles every roster member for one period. The slice
// preserves roster order for deterministic display; the map is the keyed
// view for programmatic consumers. Idempotent: pure function of its inputs.
func RecomputeAll(
	ctx context.Context,
	p Period,
	roster []employee.Employee,
	leavesByEmployee map[string][]leave.Leave,
	overridesByEmployee map[string]*AttendanceOverride,
) ([]BatchResult, map[string]Summary, error) {
	if !p.Valid() {
		return nil, nil, attendanceerrors.ErrInvalidPeriod
	}

	results := make([]BatchResult, len(roster))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchWorkerLimit)

	for i, emp := range roster {
		i, emp := i, emp
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			summary, err := Reconcile(
				emp,
				p,
				overridesByEmployee[emp.EmployeeCode],
				leavesByEmployee[emp.EmployeeCode],
			)

			// Disjoint index per goroutine, no lock needed.
			if err != nil {
				results[i] = BatchResult{EmployeeCode: emp.EmployeeCode, Err: err}
				return nil
			}
			results[i] = BatchResult{EmployeeCode: emp.EmployeeCode, Summary: &summary}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	byEmployee := make(map[string]Summary, len(results))
	for _, r := range results {
		if r.Summary != nil {
			byEmployee[r.EmployeeCode] = *r.Summary
		}
	}
	return results, byEmployee, nil
}
