package ioschema

import (
	"context"
	"testing"

	"github.com/hoopsync/hsdb/internal/iodb"
	"github.com/hoopsync/hsdb/pkg/hsdb"
	"github.com/stretchr/testify/require"
)

// TestManager_ImplementsInterface verifies manager implements
// hsdb.SchemaManager interface.
func TestManager_ImplementsInterface(t *testing.T) {
	op := iodb.NewPgxOperator()
	var _ hsdb.SchemaManager = NewManager(op)
}

// TestNewManager_CreatesManager verifies manager creation.
func TestNewManager_CreatesManager(t *testing.T) {
	op := iodb.NewPgxOperator()
	mgr := NewManager(op)
	require.NotNil(t, mgr)
}

// TestCreateWithoutConnection verifies schema operations reject a
// disconnected operator.
func TestCreateWithoutConnection(t *testing.T) {
	op := iodb.NewPgxOperator()
	mgr := NewManager(op)

	ctx := context.Background()

	err := mgr.Create(ctx)
	require.Error(t, err)

	err = mgr.Migrate(ctx)
	require.Error(t, err)
}
