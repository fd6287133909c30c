package gormstore

import (
	"errors"
	"testing"

	mysqldriver "github.com/go-sql-driver/mysql"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"innovation-hub/internal/store"
)

func TestTranslateNotFound(t *testing.T) {
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), store.ErrNotFound)
	assert.ErrorIs(t, translate(pkgerrors.Wrap(gorm.ErrRecordNotFound, "first")), store.ErrNotFound)
}

func TestTranslateDuplicateKey(t *testing.T) {
	dup := &mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b.c' for key 'idx_user_email'"}
	err := translate(dup)
	assert.ErrorIs(t, err, store.ErrConflict)
	assert.Contains(t, err.Error(), "Duplicate entry")

	assert.ErrorIs(t, translate(gorm.ErrDuplicatedKey), store.ErrConflict)
}

func TestTranslateOtherErrorsKeepCause(t *testing.T) {
	assert.NoError(t, translate(nil))

	lost := &mysqldriver.MySQLError{Number: 2013, Message: "Lost connection to MySQL server during query"}
	err := translate(lost)
	require.Error(t, err)
	assert.False(t, errors.Is(err, store.ErrConflict))

	var me *mysqldriver.MySQLError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, uint16(2013), me.Number)

	we := store.Fail("update_project", "1", err)
	assert.ErrorAs(t, we, &me)
}
