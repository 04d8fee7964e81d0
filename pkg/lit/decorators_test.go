package lit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModule_RecordsConfig(t *testing.T) {
	store := NewStore()
	child := Module(store, "Child", ModuleConfig{Path: "child"})
	component := NewClass("Items", ComponentKind, nil)

	module := Module(store, "App", ModuleConfig{Path: "app", Imports: []*Class{child}, Exports: []*Class{component}})

	assert.Equal(t, ModuleKind, module.Kind())
	assert.Equal(t, "module App", module.String())
	assert.Equal(t, "app", store.GetString(module, PathKey, "x"))
	assert.Equal(t, []*Class{child}, store.GetClasses(module, ImportsKey))
	assert.Equal(t, []*Class{component}, store.GetClasses(module, ExportsKey))
}

func TestModule_EmptyConfigUsesDefaults(t *testing.T) {
	store := NewStore()
	module := Module(store, "Empty", ModuleConfig{})

	assert.Equal(t, "", store.GetString(module, PathKey, "x"))
	assert.Empty(t, store.GetClasses(module, ImportsKey))
	assert.Empty(t, store.GetClasses(module, ExportsKey))
	assert.True(t, store.Has(module, ImportsKey))
}

func TestServiceAndComponent_RecordDependencies(t *testing.T) {
	store := NewStore()
	dep := Service(store, "Dep", Ctor0(func() int { return 1 }))
	component := Component(store, "Items", Ctor1(func(int) string { return "" }), dep)

	assert.Equal(t, ServiceKind, dep.Kind())
	assert.Equal(t, ComponentKind, component.Kind())
	assert.Empty(t, store.Params(dep, ""))
	assert.True(t, store.Has(dep, ParamTypesKey), "an empty dependency list is still recorded")
	assert.Equal(t, []*Class{dep}, store.Params(component, ""))
}

func TestVerbMappings(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*Store, *Class, string, ...Mapping)
		want  Verb
	}{
		{"get", GetMapping, GET},
		{"post", PostMapping, POST},
		{"put", PutMapping, PUT},
		{"patch", PatchMapping, PATCH},
		{"delete", DeleteMapping, DELETE},
		{"any", AnyMapping, ANY},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore()
			class := NewClass("Items", ComponentKind, nil)

			tt.apply(store, class, "handle", Mapping{Method: GET, Path: ":id"})

			assert.Equal(t, tt.want, store.Get(class, MethodKey, nil, "handle"), "the decorator's own verb wins")
			assert.Equal(t, ":id", store.GetString(class, PathKey, "", "handle"))
			assert.False(t, store.Has(class, ProducesKey, "handle"))
		})
	}
}

func TestRequestMapping_BareRecordsOnlyMethod(t *testing.T) {
	store := NewStore()
	class := NewClass("Items", ComponentKind, nil)

	GetMapping(store, class, "list")

	assert.Equal(t, map[string]interface{}{MethodKey: GET}, store.GetAll(class, "list"))
}

func TestParseMapping(t *testing.T) {
	tests := []struct {
		decorator string
		want      Mapping
	}{
		{`@GetMapping`, Mapping{Method: GET}},
		{`@PostMapping("items")`, Mapping{Method: POST, Path: "items"}},
		{`@PutMapping(path=":id")`, Mapping{Method: PUT, Path: ":id"}},
		{`@DeleteMapping()`, Mapping{Method: DELETE}},
		{`@GetMapping(path=":id", produces="application/vnd.messages.v1+json")`,
			Mapping{Method: GET, Path: ":id", Produces: "application/vnd.messages.v1+json"}},
		{`@RequestMapping("patch", "items")`, Mapping{Method: PATCH, Path: "items"}},
		{`@RequestMapping(method="any")`, Mapping{Method: ANY}},
	}

	for _, tt := range tests {
		t.Run(tt.decorator, func(t *testing.T) {
			got, err := ParseMapping(tt.decorator)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecorate(t *testing.T) {
	store := NewStore()
	class := NewClass("Items", ComponentKind, nil)

	require.NoError(t, Decorate(store, class, "show", `@GetMapping(":id", produces="text/csv")`))
	assert.Equal(t, GET, store.Get(class, MethodKey, nil, "show"))
	assert.Equal(t, ":id", store.GetString(class, PathKey, "", "show"))
	assert.Equal(t, "text/csv", store.GetString(class, ProducesKey, "", "show"))

	err := Decorate(store, class, "broken", `@FetchMapping`)
	require.Error(t, err)
	assert.True(t, IsCode(err, RegistrationErrorCode))
	assert.True(t, IsCode(err, AnnotationErrorCode))
	assert.Contains(t, err.Error(), "failed to register route 'Items.broken'")
	assert.False(t, store.Has(class, MethodKey, "broken"))

	err = Decorate(store, class, "verb", `@RequestMapping("fetch")`)
	assert.True(t, IsCode(err, AnnotationErrorCode))
}

func TestClassRoute(t *testing.T) {
	store := NewStore()
	class := Component(store, "Items", Ctor0(func() *widget { return &widget{} }))

	class.
		Route(store, "List", `@GetMapping`, ResponseOnly((*widget).Respond)).
		Route(store, "Show", `@GetMapping(":id")`, RequestResponse((*widget).Echo))

	members := class.Members()
	require.Len(t, members, 2)
	assert.Equal(t, "List", members[0].Name)
	assert.Equal(t, ShapeRequestResponse, members[1].Handler.Shape())
	assert.Equal(t, ":id", store.GetString(class, PathKey, "", "Show"))

	assert.Panics(t, func() {
		class.Route(store, "Bad", `@GetMapping(verb="x")`, ResponseOnly((*widget).Respond))
	})
}

func TestClass_MethodRedeclarationKeepsPosition(t *testing.T) {
	class := NewClass("Items", ComponentKind, nil)
	class.Method("A", Handler{}).Method("B", Handler{})
	class.Method("A", ResponseOnly((*widget).Respond))

	members := class.Members()
	require.Len(t, members, 2)
	assert.Equal(t, "A", members[0].Name)
	assert.Equal(t, ShapeResponseOnly, members[0].Handler.Shape())

	m, ok := class.Lookup("B")
	require.True(t, ok)
	assert.Equal(t, ShapeNotImplemented, m.Handler.Shape())
	_, ok = class.Lookup("C")
	assert.False(t, ok)
}

func TestParseVerb(t *testing.T) {
	v, ok := ParseVerb(" delete ")
	assert.True(t, ok)
	assert.Equal(t, DELETE, v)

	_, ok = ParseVerb("TRACE")
	assert.False(t, ok)

	assert.Equal(t, []string{"POST"}, POST.Methods())
	assert.Len(t, ANY.Methods(), 7)
}
