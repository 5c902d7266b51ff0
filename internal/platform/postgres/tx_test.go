// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

/*
TestReadTxOptions_SnapshotIsolation pins the isolation level of read
transactions. Count and window queries share one transaction; only
REPEATABLE READ gives them one snapshot — under READ COMMITTED each
statement snapshots independently and a concurrent commit can make the
total disagree with the returned page.
*/
func TestReadTxOptions_SnapshotIsolation(t *testing.T) {
	assert.Equal(t, pgx.RepeatableRead, readTxOptions.IsoLevel)
	assert.Equal(t, pgx.ReadOnly, readTxOptions.AccessMode)
}
