package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEnum(t *testing.T) {
	props := Extract("status enum: planned, active, done")
	require.Contains(t, props, "status")
	assert.Equal(t, "string", props["status"].Type)
	assert.Equal(t, []string{"planned", "active", "done"}, props["status"].Enum)
}

func TestExtractEnumPipeSeparated(t *testing.T) {
	props := Extract("priority ENUM: low|medium|high")
	require.Contains(t, props, "priority")
	assert.Equal(t, []string{"low", "medium", "high"}, props["priority"].Enum)
}

func TestExtractArrayOfEnum(t *testing.T) {
	props := Extract("roles: user, admin, manager")
	require.Contains(t, props, "roles")
	assert.Equal(t, "array", props["roles"].Type)
	require.NotNil(t, props["roles"].Items)
	assert.Equal(t, "string", props["roles"].Items.Type)
	assert.Equal(t, []string{"user", "admin", "manager"}, props["roles"].Items.Enum)
}

func TestExtractListGuardAgainstEnumSegment(t *testing.T) {
	// сегмент со словом enum списком не считается — это enum-объявление
	props := Extract("status enum: a, b")
	require.Contains(t, props, "status")
	assert.Equal(t, "string", props["status"].Type)
	assert.NotContains(t, props, "enum")
}

func TestExtractSingleValueIsNotList(t *testing.T) {
	props := Extract("owner: alice")
	assert.NotContains(t, props, "owner")
}

func TestExtractFormatHints(t *testing.T) {
	props := Extract("users have an email and created_at, updated_at")

	require.Contains(t, props, "email")
	assert.Equal(t, "email", props["email"].Format)

	require.Contains(t, props, "created_at")
	assert.Equal(t, "date-time", props["created_at"].Format)
	require.Contains(t, props, "updated_at")
	assert.Equal(t, "date-time", props["updated_at"].Format)
}

func TestExtractForeignKey(t *testing.T) {
	props := Extract("FK: user_id -> users.id")
	require.Contains(t, props, "user_id")
	f := props["user_id"]
	assert.Equal(t, "string", f.Type)
	assert.Equal(t, "uuid", f.Format)
	assert.Equal(t, "users", f.RefTable)
	assert.Equal(t, "id", f.RefColumn)
	assert.Equal(t, "user", f.RelationshipName)
	assert.Equal(t, "#/users/id", f.Ref)
}

func TestExtractForeignKeyUnicodeArrow(t *testing.T) {
	props := Extract("fk: order_id → orders.id")
	require.Contains(t, props, "order_id")
	assert.Equal(t, "order", props["order_id"].RelationshipName)
}

func TestExtractTypedLiteral(t *testing.T) {
	props := Extract("add age (integer) and active (boolean)")
	require.Contains(t, props, "age")
	assert.Equal(t, "integer", props["age"].Type)
	require.Contains(t, props, "active")
	assert.Equal(t, "boolean", props["active"].Type)
}

func TestExtractPriorityEnumOverTyped(t *testing.T) {
	props := Extract("status enum: a,b (string)")
	require.Contains(t, props, "status")
	assert.Equal(t, []string{"a", "b"}, props["status"].Enum)
	assert.Equal(t, "string", props["status"].Type)
}

func TestExtractTypedNeverOverridesTimestamp(t *testing.T) {
	props := Extract("created_at (string)")
	require.Contains(t, props, "created_at")
	assert.Equal(t, "date-time", props["created_at"].Format)
}

func TestExtractTotal(t *testing.T) {
	for _, text := range []string{
		"",
		"   \t\n  ",
		"\x00\x01\xff garbage \xfe",
		"::::,,,||->.",
		"enum: enum: enum:",
	} {
		assert.NotPanics(t, func() { _ = Extract(text) })
	}
}

func TestExtractEmptyTextYieldsNothing(t *testing.T) {
	assert.Empty(t, Extract(""))
	assert.Empty(t, Extract("just some prose with no schema content at all?"))
}
