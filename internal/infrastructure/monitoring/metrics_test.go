package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAddressChanged(t *testing.T) {
	Business.AddressesChangedTotal.Reset()

	RecordAddressChanged("create")
	RecordAddressChanged("create")
	RecordAddressChanged("delete")

	assert.Equal(t, 2.0, testutil.ToFloat64(Business.AddressesChangedTotal.WithLabelValues("create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(Business.AddressesChangedTotal.WithLabelValues("delete")))
}

func TestRecordCounters(t *testing.T) {
	created := testutil.ToFloat64(Business.CustomersCreatedTotal)
	blocked := testutil.ToFloat64(Business.DeletesBlockedTotal)
	repairs := testutil.ToFloat64(Business.PrimaryRepairsTotal)

	RecordCustomerCreated()
	RecordDeleteBlocked()
	RecordPrimaryRepairs(3)

	assert.Equal(t, created+1, testutil.ToFloat64(Business.CustomersCreatedTotal))
	assert.Equal(t, blocked+1, testutil.ToFloat64(Business.DeletesBlockedTotal))
	assert.Equal(t, repairs+3, testutil.ToFloat64(Business.PrimaryRepairsTotal))
}

func TestRecordDBQuery(t *testing.T) {
	DB.QueryDuration.Reset()

	RecordDBQuery("ListCustomers", "success", 10*time.Millisecond)

	assert.Equal(t, 1, testutil.CollectAndCount(DB.QueryDuration))
}
