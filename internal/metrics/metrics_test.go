// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommend/initial", "200"))
	RecordAPIRequest("GET", "/api/v1/recommend/initial", "200", 25*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommend/initial", "200"))

	if after-before != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", after-before)
	}
}

func TestRecordInteractionWrite(t *testing.T) {
	successBefore := testutil.ToFloat64(InteractionWrites.WithLabelValues("success"))
	failureBefore := testutil.ToFloat64(InteractionWrites.WithLabelValues("failure"))
	rowsBefore := testutil.ToFloat64(InteractionRowsInserted)

	RecordInteractionWrite(3, nil)
	RecordInteractionWrite(0, errors.New("commit failed"))

	if got := testutil.ToFloat64(InteractionWrites.WithLabelValues("success")) - successBefore; got != 1 {
		t.Errorf("success delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(InteractionWrites.WithLabelValues("failure")) - failureBefore; got != 1 {
		t.Errorf("failure delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(InteractionRowsInserted) - rowsBefore; got != 3 {
		t.Errorf("rows delta = %v, want 3", got)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hitsBefore := testutil.ToFloat64(CacheHits.WithLabelValues("poster", "memory"))
	missesBefore := testutil.ToFloat64(CacheMisses.WithLabelValues("poster", "memory"))

	RecordCacheLookup("poster", "memory", true)
	RecordCacheLookup("poster", "memory", false)
	RecordCacheLookup("poster", "memory", false)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("poster", "memory")) - hitsBefore; got != 1 {
		t.Errorf("hits delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("poster", "memory")) - missesBefore; got != 2 {
		t.Errorf("misses delta = %v, want 2", got)
	}
}
