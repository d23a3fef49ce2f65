// Package refs validates that referenced aggregate ids exist before a video
// is persisted. Each domain repository plugs in through the Checker
// interface; Validate reports every missing id per aggregate in one error.
package refs

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	pkgerrors "github.com/codelabs/catalog-backend/pkg/errors"
)

// Checker answers existence queries for one aggregate type.
type Checker interface {
	// Aggregate names the checked aggregate in error messages, e.g. "categories".
	Aggregate() string

	// ExistsByIDs returns the subset of ids that exist, order not guaranteed.
	ExistsByIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}

// Validate runs the checker over ids and fails when any id is unknown. The
// error message lists the missing ids in their request order so callers get
// a stable message for the same input.
func Validate(ctx context.Context, checker Checker, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	found, err := checker.ExistsByIDs(ctx, ids)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err,
			fmt.Sprintf("checking %s existence", checker.Aggregate()))
	}

	existing := make(map[uuid.UUID]struct{}, len(found))
	for _, id := range found {
		existing[id] = struct{}{}
	}

	seen := make(map[uuid.UUID]struct{}, len(ids))
	var missing []string
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := existing[id]; !ok {
			missing = append(missing, id.String())
		}
	}
	if len(missing) == 0 {
		return nil
	}

	return pkgerrors.New(pkgerrors.CodeNotFound,
		fmt.Sprintf("Some %s could not be found: %s", checker.Aggregate(), strings.Join(missing, ", ")))
}
