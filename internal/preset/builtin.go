package preset

import (
	"regexp"
	"strings"

	"github.com/ludo-technologies/larascan/domain"
	"github.com/ludo-technologies/larascan/internal/rules"
)

// Preset names
const (
	Commands    = "commands"
	Jobs        = "jobs"
	Models      = "models"
	Events      = "events"
	Listeners   = "listeners"
	Middleware  = "middleware"
	Policies    = "policies"
	Providers   = "providers"
	Resources   = "resources"
	Observers   = "observers"
	Requests    = "requests"
	Actions     = "actions"
	Controllers = "controllers"
	Livewire    = "livewire"
	Volt        = "volt"
)

// DefaultNamespaces are the category namespaces relative to the root namespace
var DefaultNamespaces = map[string]string{
	Commands:    `Console\Commands`,
	Jobs:        `Jobs`,
	Models:      `Models`,
	Events:      `Events`,
	Listeners:   `Listeners`,
	Middleware:  `Http\Middleware`,
	Policies:    `Policies`,
	Providers:   `Providers`,
	Resources:   `Http\Resources`,
	Observers:   `Observers`,
	Requests:    `Http\Requests`,
	Actions:     `Actions`,
	Controllers: `Http\Controllers`,
	Livewire:    `Livewire`,
	Volt:        ``,
}

// Options parameterize the built-in presets
type Options struct {
	// RootNamespace is the PSR-4 namespace of the app directory, usually "App"
	RootNamespace string

	ScanMode domain.ScanMode

	// Namespaces overrides DefaultNamespaces per preset. Values may be relative
	// to RootNamespace or fully-qualified with a leading backslash.
	Namespaces map[string]string

	// Verbs overrides the verb list of commands, jobs, listeners or middleware
	Verbs map[string][]string

	EventSuffixes          []string
	ControllerExtraMethods []string
}

// DefaultOptions returns options for a stock Laravel application
func DefaultOptions() Options {
	return Options{
		RootNamespace: "App",
		ScanMode:      domain.ScanModeAST,
	}
}

// Namespace resolves the namespace a preset scans
func (o Options) Namespace(name string) string {
	rel, ok := o.Namespaces[name]
	if !ok {
		rel = DefaultNamespaces[name]
	}
	if strings.HasPrefix(rel, `\`) {
		return strings.Trim(rel, `\`)
	}
	root := strings.Trim(o.RootNamespace, `\`)
	rel = strings.Trim(rel, `\`)
	switch {
	case root == "":
		return rel
	case rel == "":
		return root
	}
	return root + `\` + rel
}

func (o Options) verbs(name string, defaults []string) []string {
	if v, ok := o.Verbs[name]; ok && len(v) > 0 {
		return v
	}
	return defaults
}

var formRequestName = regexp.MustCompile(`^(Store|Update).+Request$`)

// Build constructs the table of built-in presets
func Build(opts Options) *Table {
	if opts.ScanMode == "" {
		opts.ScanMode = domain.ScanModeAST
	}
	mode := opts.ScanMode
	ns := func(name string) Scope { return Scope{Namespace: opts.Namespace(name)} }
	steps := func(scope Scope, predicates ...rules.Predicate) []Step {
		out := make([]Step, len(predicates))
		for i, p := range predicates {
			out[i] = Step{Predicate: p, Scope: scope}
		}
		return out
	}
	forbidHTTP := func(c domain.Category) rules.Predicate {
		return rules.ForbiddenDependency(c, mode, rules.HTTPImports, rules.HTTPHelpers)
	}
	eventSuffixes := opts.EventSuffixes
	if len(eventSuffixes) == 0 {
		eventSuffixes = rules.EventSuffixes
	}
	contracts := rules.ContractChecker{ActionNamespace: opts.Namespace(Actions)}

	return NewTable(
		Preset{
			Name:        Commands,
			Category:    domain.CategoryCommand,
			Description: "Artisan commands are named after what they do and declare a signature",
			Steps: steps(ns(Commands),
				rules.VerbPrefix(domain.CategoryCommand, opts.verbs(Commands, rules.CommandVerbs)),
				rules.RequiredProperty(domain.CategoryCommand, "signature",
					"Artisan registers a command under the name and arguments declared in its signature.",
					"protected $signature = 'sessions:prune {--days=30}';"),
				rules.RequiredMethod(domain.CategoryCommand,
					"Artisan calls handle() (or __invoke()) when the command runs.",
					"handle", "__invoke"),
			),
		},
		Preset{
			Name:        Jobs,
			Category:    domain.CategoryJob,
			Description: "Jobs are queued, verb-named and independent of the HTTP request",
			Steps: steps(ns(Jobs),
				rules.VerbPrefix(domain.CategoryJob, opts.verbs(Jobs, rules.JobVerbs)),
				rules.RequiredInterface(domain.CategoryJob, rules.ShouldQueue,
					"Jobs exist to move work off the request cycle; without ShouldQueue they run synchronously."),
				rules.RequiredMethod(domain.CategoryJob,
					"The queue worker calls handle() (or __invoke()) to run the job.",
					"handle", "__invoke"),
				forbidHTTP(domain.CategoryJob),
			),
		},
		Preset{
			Name:        Models,
			Category:    domain.CategoryModel,
			Description: "Models whitelist mass-assignable attributes and stay out of the HTTP layer",
			Steps: steps(ns(Models),
				rules.RequiredProperty(domain.CategoryModel, "fillable",
					"An explicit $fillable list is the only safe protection against mass assignment.",
					"protected $fillable = ['title', 'body'];"),
				rules.ForbiddenProperty(domain.CategoryModel, "guarded",
					"$guarded is a deny-list; any column added later becomes mass assignable.",
					"Replace `$guarded` with an explicit `$fillable` list."),
				forbidHTTP(domain.CategoryModel),
			),
		},
		Preset{
			Name:        Events,
			Category:    domain.CategoryEvent,
			Description: "Events are named in the past tense",
			Steps: steps(ns(Events),
				rules.NameSuffix(domain.CategoryEvent, eventSuffixes),
			),
		},
		Preset{
			Name:        Listeners,
			Category:    domain.CategoryListener,
			Description: "Listeners are verb-named handlers independent of the HTTP request",
			Steps: steps(ns(Listeners),
				rules.VerbPrefix(domain.CategoryListener, opts.verbs(Listeners, rules.ListenerVerbs)),
				rules.RequiredMethod(domain.CategoryListener,
					"The event dispatcher calls handle() (or __invoke()) with the event.",
					"handle", "__invoke"),
				forbidHTTP(domain.CategoryListener),
			),
		},
		Preset{
			Name:        Middleware,
			Category:    domain.CategoryMiddleware,
			Description: "Middleware is verb-named and implements handle()",
			Steps: steps(ns(Middleware),
				rules.VerbPrefix(domain.CategoryMiddleware, opts.verbs(Middleware, rules.MiddlewareVerbs)),
				rules.RequiredMethod(domain.CategoryMiddleware,
					"The HTTP kernel passes every request through handle().",
					"handle"),
			),
		},
		Preset{
			Name:        Policies,
			Category:    domain.CategoryPolicy,
			Description: "Policies only expose authorization abilities",
			Steps: steps(ns(Policies),
				rules.NameSuffix(domain.CategoryPolicy, []string{"Policy"}),
				rules.AllowedMethods(domain.CategoryPolicy, rules.PolicyMethods, nil,
					"Every public method on a policy is treated as an ability by the gate; anything else is misplaced logic."),
			),
		},
		Preset{
			Name:        Providers,
			Category:    domain.CategoryServiceProvider,
			Description: "Service providers are suffixed and independent of the HTTP request",
			Steps: steps(ns(Providers),
				rules.NameSuffix(domain.CategoryServiceProvider, []string{"ServiceProvider"}),
				forbidHTTP(domain.CategoryServiceProvider),
			),
		},
		Preset{
			Name:        Resources,
			Category:    domain.CategoryResource,
			Description: "API resources only transform data they are given",
			Steps: steps(ns(Resources),
				rules.NameSuffix(domain.CategoryResource, []string{"Resource", "Collection"}),
				rules.RequiredOwnMethod(domain.CategoryResource,
					"A resource defines its own toArray(); relying on the default leaks every model attribute.",
					"toArray"),
				rules.AllowedMethods(domain.CategoryResource, rules.ResourceMethods, nil,
					"Resources shape a response; helper methods belong on the model or a dedicated class."),
				rules.NoDatabaseQueries(domain.CategoryResource, mode, rules.QueryMethods),
			),
		},
		Preset{
			Name:        Observers,
			Category:    domain.CategoryObserver,
			Description: "Observers only implement model lifecycle hooks",
			Steps: steps(ns(Observers),
				rules.NameSuffix(domain.CategoryObserver, []string{"Observer"}),
				rules.AllowedMethods(domain.CategoryObserver, rules.ObserverMethods, nil,
					"Eloquent only calls lifecycle hooks on an observer; other public methods are never invoked."),
				forbidHTTP(domain.CategoryObserver),
			),
		},
		Preset{
			Name:        Requests,
			Category:    domain.CategoryFormRequest,
			Description: "Form requests validate one write operation and contain no helpers",
			Steps: steps(ns(Requests),
				rules.NamePattern(domain.CategoryFormRequest, formRequestName, []string{"Store<Model>Request", "Update<Model>Request"}),
				rules.RequiredMethod(domain.CategoryFormRequest,
					"The validator reads its rules from rules().",
					"rules"),
				rules.RequiredMethod(domain.CategoryFormRequest,
					"authorize() decides whether the current user may perform the request.",
					"authorize"),
				rules.NoNonPublicMethods(domain.CategoryFormRequest,
					"Form requests only describe validation; helper methods hide logic that belongs in an action."),
			),
		},
		Preset{
			Name:        Actions,
			Category:    domain.CategoryAction,
			Description: "Actions have a single public entry point",
			Steps: steps(ns(Actions),
				rules.AllowedMethods(domain.CategoryAction, rules.ActionMethods, nil,
					"An action performs exactly one operation through handle()."),
				rules.NoNonPublicMethods(domain.CategoryAction,
					"Private helpers make an action do more than one thing; extract them into their own action."),
			),
		},
		Preset{
			Name:        Controllers,
			Category:    domain.CategoryController,
			Description: "Controllers are thin resource controllers wiring requests to actions",
			Steps: steps(ns(Controllers),
				rules.AllowedMethods(domain.CategoryController, rules.ControllerMethods, opts.ControllerExtraMethods,
					"Resource controllers map routes to the seven REST verbs; other endpoints belong in their own controller."),
				rules.NoNonPublicMethods(domain.CategoryController,
					"Controller helpers are business logic in disguise; move them into actions."),
				rules.ParameterContract(domain.CategoryController, contracts, "store",
					rules.ParamFormRequest, rules.ParamAction),
				rules.ParameterContract(domain.CategoryController, contracts, "update",
					rules.ParamModel, rules.ParamFormRequest, rules.ParamAction),
				rules.ParameterContract(domain.CategoryController, contracts, "destroy",
					rules.ParamModel, rules.ParamAction),
			),
		},
		Preset{
			Name:        Livewire,
			Category:    domain.CategoryLivewire,
			Description: "Livewire components render a view and stay out of the HTTP request",
			Steps: steps(ns(Livewire),
				rules.RequiredMethod(domain.CategoryLivewire,
					"Livewire calls render() to produce the component's view.",
					"render"),
				forbidHTTP(domain.CategoryLivewire),
			),
		},
		Preset{
			Name:        Volt,
			Category:    domain.CategoryVolt,
			Description: "No single-file Volt components",
			Steps: append(
				steps(Scope{Templates: true}, voltPredicate()),
				steps(ns(Volt), voltPredicate())...,
			),
		},
	)
}

func voltPredicate() rules.Predicate {
	return rules.ForbiddenContent(domain.CategoryVolt, rules.VoltMarkers,
		"Components are class based; single-file Volt components mix state, logic and markup in one template.",
		"Move the component into a class under app/Livewire and keep the template markup only.")
}
