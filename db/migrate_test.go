package db

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected file in migrations: %s", name)
		}
	}
	assert.Equal(t, ups, downs)
}

func TestInitialSchemaDeclaresUniqueConstraints(t *testing.T) {
	raw, err := fs.ReadFile(migrationsFS, "migrations/000001_init_schema.up.sql")
	require.NoError(t, err)
	schema := string(raw)

	for _, constraint := range []string{
		"holes_course_hole_number_key",
		"hole_scores_round_hole_number_key",
		"user_achievements_user_achievement_key",
		"friendships_user_friend_key",
		"rounds_shareable_token_key",
		"achievements_name_key",
	} {
		assert.Contains(t, schema, constraint)
	}
}

func TestMigrateDownRejectsNonPositiveSteps(t *testing.T) {
	assert.Error(t, MigrateDown(nil, 0))
}
