package lit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	Count int
}

type repo struct {
	name string
}

type service struct {
	repo    *repo
	counter *counter
}

func TestInjector_ResolvesDepthFirstLeftToRight(t *testing.T) {
	store := NewStore()
	var order []string

	leaf := Service(store, "Leaf", Ctor0(func() *counter {
		order = append(order, "leaf")
		return &counter{}
	}))
	left := Service(store, "Left", Ctor1(func(c *counter) *repo {
		order = append(order, "left")
		return &repo{name: "left"}
	}), leaf)
	right := Service(store, "Right", Ctor0(func() *counter {
		order = append(order, "right")
		return &counter{Count: 1}
	}))
	root := Service(store, "Root", Ctor2(func(r *repo, c *counter) *service {
		order = append(order, "root")
		return &service{repo: r, counter: c}
	}), left, right)

	svc, err := Resolve[*service](NewInjector(store), root)
	require.NoError(t, err)

	assert.Equal(t, []string{"leaf", "left", "right", "root"}, order)
	assert.Equal(t, "left", svc.repo.name)
	assert.Equal(t, 1, svc.counter.Count)
}

func TestInjector_NoMetadataMeansNoDependencies(t *testing.T) {
	store := NewStore()
	bare := NewClass("Bare", ServiceKind, Ctor0(func() *counter { return &counter{} }))

	instance, err := NewInjector(store).Resolve(bare)
	require.NoError(t, err)
	assert.IsType(t, &counter{}, instance)
}

func TestInjector_NewInstancePerResolve(t *testing.T) {
	store := NewStore()
	dep := Service(store, "Counter", Ctor0(func() *counter { return &counter{} }))
	class := Service(store, "Holder", Ctor2(func(c *counter, r *repo) *service {
		return &service{counter: c, repo: r}
	}), dep, Service(store, "Repo", Ctor0(func() *repo { return &repo{} })))

	inj := NewInjector(store)
	a, err := Resolve[*service](inj, class)
	require.NoError(t, err)
	a.counter.Count = 99

	b, err := Resolve[*service](inj, class)
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.NotSame(t, a.counter, b.counter)
	assert.Equal(t, 0, b.counter.Count)
}

func TestInjector_CycleIsReported(t *testing.T) {
	store := NewStore()
	a := NewClass("A", ServiceKind, Ctor1(func(interface{}) *counter { return nil }))
	b := NewClass("B", ServiceKind, Ctor1(func(interface{}) *counter { return nil }))
	store.Set(a, map[string]interface{}{ParamTypesKey: []*Class{b}})
	store.Set(b, map[string]interface{}{ParamTypesKey: []*Class{a}})

	_, err := NewInjector(store).Resolve(a)
	require.Error(t, err)
	assert.True(t, IsCode(err, CycleErrorCode))
	assert.Contains(t, err.Error(), "dependency cycle detected: A -> B -> A")
}

func TestInjector_SelfCycle(t *testing.T) {
	store := NewStore()
	self := NewClass("Self", ServiceKind, Ctor0(func() *counter { return nil }))
	store.Set(self, map[string]interface{}{ParamTypesKey: []*Class{self}})

	_, err := NewInjector(store).Resolve(self)
	assert.True(t, IsCode(err, CycleErrorCode))
}

func TestInjector_DiamondIsNotACycle(t *testing.T) {
	store := NewStore()
	shared := Service(store, "Shared", Ctor0(func() *counter { return &counter{} }))
	left := Service(store, "Left", Ctor1(func(c *counter) *counter { return c }), shared)
	right := Service(store, "Right", Ctor1(func(c *counter) *counter { return c }), shared)
	top := Service(store, "Top", Ctor2(func(l, r *counter) *service {
		return &service{counter: l, repo: &repo{name: "diamond"}}
	}), left, right)

	_, err := NewInjector(store).Resolve(top)
	assert.NoError(t, err)
}

func TestInjector_Errors(t *testing.T) {
	store := NewStore()
	wrongType := Service(store, "Wrong", Ctor0(func() *repo { return &repo{} }))
	tooFew := Service(store, "TooFew", Ctor2(func(a, b *counter) *service { return nil }))
	mismatched := Service(store, "Mismatched", Ctor1(func(c *counter) *service { return nil }), wrongType)
	failing := Service(store, "Failing", CtorE0(func() (*counter, error) { return nil, errors.New("connection refused") }))
	noCtor := NewClass("NoCtor", ServiceKind, nil)

	tests := []struct {
		name     string
		class    *Class
		contains string
	}{
		{"arity", tooFew, "expects 2 argument(s), got 0"},
		{"argument type", mismatched, "constructor argument 0: expected *lit.counter, got *lit.repo"},
		{"constructor error", failing, "connection refused"},
		{"missing constructor", noCtor, "declares no constructor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInjector(store).Resolve(tt.class)
			require.Error(t, err)
			assert.True(t, IsCode(err, DependencyErrorCode))
			assert.Contains(t, err.Error(), tt.contains)
			assert.Contains(t, err.Error(), "failed to resolve dependency '"+tt.class.Name()+"'")
		})
	}
}

func TestResolve_TypeMismatch(t *testing.T) {
	store := NewStore()
	class := Service(store, "Repo", Ctor0(func() *repo { return &repo{} }))

	_, err := Resolve[*counter](NewInjector(store), class)
	require.Error(t, err)
	assert.True(t, IsCode(err, DependencyErrorCode))
	assert.Contains(t, err.Error(), "instance is *lit.repo, not *lit.counter")
}

func TestCtorAdapters(t *testing.T) {
	three, err := Ctor3(func(a, b, c int) int { return a + b + c })(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 6, three)

	four, err := Ctor4(func(a, b, c int, d string) string { return d })(1, 2, 3, "four")
	require.NoError(t, err)
	assert.Equal(t, "four", four)

	withErr, err := CtorE1(func(s string) (string, error) { return s + "!", nil })("hi")
	require.NoError(t, err)
	assert.Equal(t, "hi!", withErr)

	_, err = CtorE2(func(a, b string) (string, error) { return a + b, nil })("a", 2)
	assert.Error(t, err)
}
