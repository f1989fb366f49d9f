// internal/app/store/indexes/indexes.go
package indexes

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	accountstore "github.com/kirisuberu/connect2bulk/internal/app/store/accounts"
	"github.com/kirisuberu/connect2bulk/internal/app/store/emailverify"
	firmstore "github.com/kirisuberu/connect2bulk/internal/app/store/firms"
	loadstore "github.com/kirisuberu/connect2bulk/internal/app/store/loads"
	"github.com/kirisuberu/connect2bulk/internal/app/store/oauthstate"
	"github.com/kirisuberu/connect2bulk/internal/app/store/pendingreg"
	truckstore "github.com/kirisuberu/connect2bulk/internal/app/store/trucks"
	userstore "github.com/kirisuberu/connect2bulk/internal/app/store/users"
)

// EnsureAll creates the indexes for every collection. Called once at startup
// and by the test harness so tests see the same constraints as production.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"firms", firmstore.New(db).EnsureIndexes},
		{"loads", loadstore.New(db).EnsureIndexes},
		{"trucks", truckstore.New(db).EnsureIndexes},
		{"users", userstore.New(db).EnsureIndexes},
		{"accounts", accountstore.New(db).EnsureIndexes},
		{"email_verifications", emailverify.New(db, 0).EnsureIndexes},
		{"pending_registrations", pendingreg.New(db, 0).EnsureIndexes},
		{"oauth_states", oauthstate.New(db).EnsureIndexes},
	}
	for _, s := range steps {
		if err := s.fn(ctx); err != nil {
			return fmt.Errorf("ensure indexes for %s: %w", s.name, err)
		}
	}
	return nil
}
