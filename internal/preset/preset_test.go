package preset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/larascan/domain"
	"github.com/ludo-technologies/larascan/internal/rules"
)

func TestBuildContainsEveryCategory(t *testing.T) {
	table := Build(DefaultOptions())

	want := []string{
		Commands, Jobs, Models, Events, Listeners, Middleware, Policies, Providers,
		Resources, Observers, Requests, Actions, Controllers, Livewire, Volt,
	}
	assert.Equal(t, want, table.Names())

	for _, name := range want {
		p, err := table.Get(name)
		require.NoError(t, err)
		assert.NotEmpty(t, p.Steps, name)
		assert.NotEmpty(t, p.Category, name)
	}
}

func TestOptionsNamespace(t *testing.T) {
	tests := []struct {
		name   string
		opts   Options
		preset string
		want   string
	}{
		{"default", DefaultOptions(), Jobs, `App\Jobs`},
		{"nested default", DefaultOptions(), Controllers, `App\Http\Controllers`},
		{"root only", DefaultOptions(), Volt, `App`},
		{"custom root", Options{RootNamespace: `Acme\`}, Jobs, `Acme\Jobs`},
		{"relative override", Options{RootNamespace: "App", Namespaces: map[string]string{Jobs: `Queue\Jobs`}}, Jobs, `App\Queue\Jobs`},
		{"absolute override", Options{RootNamespace: "App", Namespaces: map[string]string{Jobs: `\Domain\Billing\Jobs`}}, Jobs, `Domain\Billing\Jobs`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.Namespace(tt.preset))
		})
	}
}

func TestScopeContains(t *testing.T) {
	job := &domain.ClassDescriptor{Name: `App\Jobs\SendMail`, Namespace: `App\Jobs`, Kind: domain.ClassKindClass}
	nested := &domain.ClassDescriptor{Name: `App\Jobs\Billing\ChargeCard`, Namespace: `App\Jobs\Billing`, Kind: domain.ClassKindClass}
	other := &domain.ClassDescriptor{Name: `App\JobsLegacy\Thing`, Namespace: `App\JobsLegacy`, Kind: domain.ClassKindClass}
	view := &domain.ClassDescriptor{Name: "resources/views/welcome.blade.php", Kind: domain.ClassKindTemplate}

	jobs := Scope{Namespace: `App\Jobs`}
	assert.True(t, jobs.Contains(job))
	assert.True(t, jobs.Contains(nested))
	assert.False(t, jobs.Contains(other))
	assert.False(t, jobs.Contains(view))

	views := Scope{Templates: true}
	assert.True(t, views.Contains(view))
	assert.False(t, views.Contains(job))
}

func TestGetUnknownPresetSuggests(t *testing.T) {
	table := Build(DefaultOptions())

	_, err := table.Get("controler")
	require.Error(t, err)

	var domainErr domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrCodeUnknownPreset, domainErr.Code)
	assert.Contains(t, err.Error(), `did you mean "controllers"`)
}

func TestSuggest(t *testing.T) {
	table := Build(DefaultOptions())

	assert.Contains(t, table.Suggest("job"), Jobs)
	assert.Contains(t, table.Suggest("polcies"), Policies)
	assert.Empty(t, table.Suggest(""))
}

func TestSelect(t *testing.T) {
	table := Build(DefaultOptions())

	all, err := table.Select(nil)
	require.NoError(t, err)
	assert.Len(t, all, len(table.Names()))

	some, err := table.Select([]string{"jobs", "Policies"})
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, Jobs, some[0].Name)
	assert.Equal(t, Policies, some[1].Name)

	_, err = table.Select([]string{"jobs", "nope"})
	assert.Error(t, err)
}

func TestControllerExtraMethods(t *testing.T) {
	class := &domain.ClassDescriptor{
		Name:      `App\Http\Controllers\ReportController`,
		ShortName: "ReportController",
		Namespace: `App\Http\Controllers`,
		File:      "app/Http/Controllers/ReportController.php",
		Kind:      domain.ClassKindClass,
		Methods: []domain.MethodDescriptor{{
			Name:           "export",
			Visibility:     domain.VisibilityPublic,
			DeclaringClass: `App\Http\Controllers\ReportController`,
			File:           "app/Http/Controllers/ReportController.php",
		}},
	}

	evaluate := func(table *Table) domain.Outcome {
		p, err := table.Get(Controllers)
		require.NoError(t, err)
		for _, step := range p.Steps {
			if step.Predicate.ID == rules.RuleAllowedMethods {
				return step.Predicate.Evaluate(class)
			}
		}
		t.Fatal("controllers preset has no allow-list step")
		return domain.Outcome{}
	}

	assert.True(t, evaluate(Build(DefaultOptions())).IsViolation())

	opts := DefaultOptions()
	opts.ControllerExtraMethods = []string{"export"}
	assert.True(t, evaluate(Build(opts)).Passed)
}

func TestVerbOverrides(t *testing.T) {
	opts := DefaultOptions()
	opts.Verbs = map[string][]string{Jobs: {"Charge"}}
	p, err := Build(opts).Get(Jobs)
	require.NoError(t, err)

	class := &domain.ClassDescriptor{Name: `App\Jobs\SendMail`, ShortName: "SendMail", Kind: domain.ClassKindClass}
	outcome := p.Steps[0].Predicate.Evaluate(class)
	require.True(t, outcome.IsViolation())
	assert.Equal(t, []string{"Charge"}, outcome.Diagnostic.Options)
}

func TestVoltPresetScopes(t *testing.T) {
	p, err := Build(DefaultOptions()).Get(Volt)
	require.NoError(t, err)
	assert.Equal(t, []string{"views", "App"}, p.Namespaces())
}
