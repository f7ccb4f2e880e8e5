package family_test

import (
	"errors"
	"sort"
	"testing"

	"github.com/renatoi/UtechSmart-Venus-Pro-Linux-MMO-Mouse-Utility/internal/family"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errProbe = errors.New("hidraw open denied")

type fakeFamily struct {
	infos []family.Info
	err   error
}

func (f fakeFamily) Enumerate() ([]family.Info, error) {
	return f.infos, f.err
}

func TestRegisterAndGet(t *testing.T) {
	reg := fakeFamily{infos: []family.Info{{Family: "stub", Path: "/dev/hidraw9"}}}
	family.Register("Stub", reg)

	assert.Equal(t, reg, family.Get("stub"))
	assert.Equal(t, reg, family.Get("STUB"))
	assert.Nil(t, family.Get("never-registered"))
}

func TestNamesSorted(t *testing.T) {
	family.Register("zulu", fakeFamily{})
	family.Register("yankee", fakeFamily{})

	names := family.Names()
	assert.Contains(t, names, "zulu")
	assert.Contains(t, names, "yankee")
	assert.True(t, sort.StringsAreSorted(names))
}

func TestEnumerateAllCollectsErrors(t *testing.T) {
	good := []family.Info{
		{Family: "chassis", Path: "/dev/hidraw2", Product: "Venus Pro", VendorID: 0x25A7, ProductID: 0xFA07},
		{Family: "chassis", Path: "/dev/hidraw5", Product: "Venus Pro", VendorID: 0x25A7, ProductID: 0xFA08},
	}
	family.Register("chassis", fakeFamily{infos: good})
	family.Register("broken", fakeFamily{err: errProbe})

	infos, err := family.EnumerateAll()
	assert.ErrorIs(t, err, errProbe)
	assert.Subset(t, infos, good)
}

func TestDetectExplicitFamily(t *testing.T) {
	infos := []family.Info{
		{Family: "delta", Path: "/dev/hidraw3"},
		{Family: "delta", Path: "/dev/hidraw4"},
	}
	family.Register("delta", fakeFamily{infos: infos})

	got, err := family.Detect("delta", "")
	require.NoError(t, err)
	assert.Equal(t, infos[0], got)

	got, err = family.Detect("Delta", "/dev/hidraw4")
	require.NoError(t, err)
	assert.Equal(t, infos[1], got)
}

func TestDetectExplicitFamilyUnlistedPath(t *testing.T) {
	family.Register("delta", fakeFamily{infos: []family.Info{{Family: "delta", Path: "/dev/hidraw3"}}})

	got, err := family.Detect("delta", "/dev/hidraw77")
	require.NoError(t, err)
	assert.Equal(t, family.Info{Family: "delta", Path: "/dev/hidraw77"}, got)
}

func TestDetectExplicitFamilyEnumerateError(t *testing.T) {
	family.Register("flaky", fakeFamily{err: errProbe})

	_, err := family.Detect("flaky", "")
	assert.ErrorIs(t, err, errProbe)
}

func TestDetectUnknownFamily(t *testing.T) {
	_, err := family.Detect("nosuch", "")
	assert.ErrorIs(t, err, family.ErrUnknownFamily)
}

func TestDetectNoDeviceInFamily(t *testing.T) {
	family.Register("vacant", fakeFamily{})

	_, err := family.Detect("vacant", "")
	assert.ErrorContains(t, err, "no vacant device found")
}

func TestDetectByPath(t *testing.T) {
	want := family.Info{Family: "echo", Path: "/dev/hidraw-echo", Product: "MMO Mouse"}
	family.Register("echo", fakeFamily{infos: []family.Info{want}})

	got, err := family.Detect("", "/dev/hidraw-echo")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDetectByPathNotAttached(t *testing.T) {
	family.Register("echo", fakeFamily{infos: []family.Info{{Family: "echo", Path: "/dev/hidraw-echo"}}})

	_, err := family.Detect("", "/dev/hidraw-none")
	assert.ErrorContains(t, err, "no device at /dev/hidraw-none")
}

func TestDetectAutoPicksFirstFamily(t *testing.T) {
	want := family.Info{Family: "alpha", Path: "/dev/hidraw0", Product: "MMO Mouse"}
	family.Register("alpha", fakeFamily{infos: []family.Info{want}})

	got, err := family.Detect("", "")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDetectAutoSurvivesOneBrokenFamily(t *testing.T) {
	want := family.Info{Family: "alpha", Path: "/dev/hidraw0", Product: "MMO Mouse"}
	family.Register("alpha", fakeFamily{infos: []family.Info{want}})
	family.Register("broken", fakeFamily{err: errProbe})

	got, err := family.Detect("", "")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
