package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HerbHall/netinventory/internal/testutil"
	"github.com/HerbHall/netinventory/pkg/models"
)

func TestReport(t *testing.T) {
	s, _ := newTestStore(t,
		testutil.NewDevice(testutil.WithLocation("Seattle Branch"), testutil.WithDeviceType(models.DeviceTypeLaptop)),
		testutil.NewDevice(testutil.WithLocation("Minneapolis HQ"), testutil.WithDeviceType(models.DeviceTypeServer)),
		testutil.NewDevice(testutil.WithLocation("Minneapolis HQ"), testutil.WithStatus(models.DeviceStatusRetired),
			testutil.WithDeviceType(models.DeviceTypeLaptop)),
	)

	r := s.Report()
	assert.Equal(t, 3, r.Total)
	assert.Equal(t, []Bucket{{"Active", 2}, {"Retired", 1}}, r.ByStatus.Buckets())
	assert.Equal(t, []Bucket{{"Minneapolis HQ", 2}, {"Seattle Branch", 1}}, r.ByLocation.Buckets())
	assert.Equal(t, []Bucket{{"Laptop", 2}, {"Server", 1}}, r.ByType.Buckets())
}

func TestReport_Empty(t *testing.T) {
	s, _ := newTestStore(t)
	r := s.Report()
	assert.Equal(t, 0, r.Total)
	assert.Empty(t, r.ByStatus.Buckets())
	assert.Empty(t, r.ByLocation.Buckets())
	assert.Empty(t, r.ByType.Buckets())
}

func TestTallyBuckets_SortedByKey(t *testing.T) {
	tally := Tally{"b": 1, "A": 4, "a": 2}
	assert.Equal(t, []Bucket{{"A", 4}, {"a", 2}, {"b", 1}}, tally.Buckets())
}
