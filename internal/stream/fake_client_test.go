package stream

import (
	"context"
	"sync"

	"dcsmission/streamcore/internal/entity"
	"dcsmission/streamcore/internal/rpc"
)

// fakeClient is a minimal, hand-rolled stand-in for a mission RPC client,
// scripted per test. It implements both UnitsClient and WeaponsClient.
//
// Transform lookups return whatever value is currently set for a given
// key on every call (tests mutate the map between ticks to script a
// change), and a queued error is returned exactly once and then cleared
// - this keeps scripting independent of how many times a background
// ticker happens to have already polled a key.
type fakeClient struct {
	mu sync.Mutex

	groups  map[entity.Coalition][]entity.Group
	units   map[string][]entity.Unit
	statics map[entity.Coalition][]entity.Static
	events  chan entity.Event

	unitTransforms   map[string]rpc.UnitTransform
	unitErrs         map[string]error
	staticTransforms map[string]rpc.StaticTransform
	weaponTransforms map[uint32]rpc.WeaponTransform
	weaponErrs       map[uint32]error
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		groups:           make(map[entity.Coalition][]entity.Group),
		units:            make(map[string][]entity.Unit),
		statics:          make(map[entity.Coalition][]entity.Static),
		events:           make(chan entity.Event, 8),
		unitTransforms:   make(map[string]rpc.UnitTransform),
		unitErrs:         make(map[string]error),
		staticTransforms: make(map[string]rpc.StaticTransform),
		weaponTransforms: make(map[uint32]rpc.WeaponTransform),
		weaponErrs:       make(map[uint32]error),
	}
}

func (f *fakeClient) Events(ctx context.Context) (<-chan entity.Event, error) {
	return f.events, nil
}

func (f *fakeClient) GetGroups(ctx context.Context, coalition entity.Coalition, category entity.GroupCategory) ([]entity.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.groups[coalition], nil
}

func (f *fakeClient) GetUnits(ctx context.Context, groupName string, activeOnly bool) ([]entity.Unit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.units[groupName], nil
}

func (f *fakeClient) GetStaticObjects(ctx context.Context, coalition entity.Coalition) ([]entity.Static, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statics[coalition], nil
}

// setUnitTransform scripts the value subsequent GetTransform calls for
// name will observe, from the next tick onward.
func (f *fakeClient) setUnitTransform(name string, tr rpc.UnitTransform) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unitTransforms[name] = tr
}

// queueUnitErr arranges for the next GetTransform(name) call to fail
// with err; it is cleared immediately after being returned once.
func (f *fakeClient) queueUnitErr(name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unitErrs[name] = err
}

func (f *fakeClient) queueWeaponErr(id uint32, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.weaponErrs[id] = err
}

func (f *fakeClient) setWeaponTransform(id uint32, tr rpc.WeaponTransform) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.weaponTransforms[id] = tr
}

func (f *fakeClient) GetTransform(ctx context.Context, name string) (rpc.UnitTransform, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.unitErrs[name]; err != nil {
		delete(f.unitErrs, name)
		return rpc.UnitTransform{}, err
	}
	return f.unitTransforms[name], nil
}

func (f *fakeClient) GetStaticTransform(ctx context.Context, name string) (rpc.StaticTransform, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.staticTransforms[name], nil
}

// weaponTransform resolves GetTransform by weapon id, used only by the
// weapons stream tests.
func (f *fakeClient) weaponTransform(ctx context.Context, id uint32) (rpc.WeaponTransform, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.weaponErrs[id]; err != nil {
		delete(f.weaponErrs, id)
		return rpc.WeaponTransform{}, err
	}
	return f.weaponTransforms[id], nil
}

type fakeWeaponsClient struct{ *fakeClient }

func (f fakeWeaponsClient) GetTransform(ctx context.Context, id uint32) (rpc.WeaponTransform, error) {
	return f.weaponTransform(ctx, id)
}
