package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webroomers/pg-booking-service/internal/model"
)

func testCatalog() Catalog {
	return Catalog{
		{ID: 11, CompanyID: 1, Key: "enquiry", Label: "Manage enquiries", Status: model.PermissionActive},
		{ID: 12, CompanyID: 1, Key: "checkout", Label: "Resolve checkouts", Status: model.PermissionActive},
		{ID: 13, CompanyID: 1, Key: "payment", Label: "Approve payments", Status: model.PermissionActive},
		{ID: 14, CompanyID: 1, Key: "renewal", Label: "Renew tenancies", Status: "Inactive"},
	}
}

func TestOwnerAlwaysAllowed(t *testing.T) {
	p := Principal{UserID: 1, Role: model.RoleOwner}
	assert.True(t, HasPermission(p, Profile{}, "enquiry", testCatalog()))
	assert.True(t, HasPermission(p, Profile{}, "anything-at-all", nil))
}

func TestSubUserGrantedSubset(t *testing.T) {
	cat := testCatalog()
	sub := Principal{UserID: 2, Role: model.RoleSubUser}
	prof := Profile{Loaded: true, Granted: []string{"enquiry"}}

	assert.True(t, HasPermission(sub, prof, "enquiry", cat))
	assert.False(t, HasPermission(sub, prof, "renewal", cat))
	assert.False(t, HasPermission(sub, prof, "payment", cat))
}

func TestSubUserMissingProfileDenies(t *testing.T) {
	sub := Principal{UserID: 2, Role: model.RoleSubUser}
	assert.False(t, HasPermission(sub, Profile{Loaded: false}, "enquiry", testCatalog()))
}

func TestTenantNeverHoldsLandlordPermissions(t *testing.T) {
	ten := Principal{UserID: 3, Role: model.RoleTenant}
	prof := Profile{Loaded: true, Granted: []string{"enquiry", "checkout"}}
	assert.False(t, HasPermission(ten, prof, "enquiry", testCatalog()))
}

func TestInactiveGrantIsInert(t *testing.T) {
	cat := testCatalog()
	sub := Principal{UserID: 2, Role: model.RoleSubUser}
	// "renewal" (id 14) was granted while active but is inactive now.
	prof := Profile{Loaded: true, Granted: []string{"14", "renewal"}}
	assert.False(t, HasPermission(sub, prof, "renewal", cat))
}

func TestNormalizeGrantsRepresentations(t *testing.T) {
	cat := testCatalog()

	// Raw ids, keys and a comma-joined string normalize identically.
	fromIDs := NormalizeGrants([]string{"11", "12"}, cat)
	fromKeys := NormalizeGrants([]string{"enquiry", "checkout"}, cat)
	fromCSV := NormalizeGrants([]string{"11,checkout"}, cat)

	require.Equal(t, IDSet{11, 12}, fromIDs)
	assert.Equal(t, fromIDs, fromKeys)
	assert.Equal(t, fromIDs, fromCSV)
}

func TestNormalizeGrantsDropsGarbageAndInactive(t *testing.T) {
	cat := testCatalog()
	set := NormalizeGrants([]string{" 11 , , bogus, 999, 14, renewal ,enquiry"}, cat)
	assert.Equal(t, IDSet{11}, set)
}

func TestNormalizeGrantsDeduplicatesAndSorts(t *testing.T) {
	cat := testCatalog()
	set := NormalizeGrants([]string{"13", "enquiry", "13,11", "payment"}, cat)
	require.Equal(t, IDSet{11, 13}, set)
	assert.True(t, set.Contains(13))
	assert.False(t, set.Contains(12))
	assert.Equal(t, "11,13", set.CSV())
}
