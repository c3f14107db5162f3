package rules

import "github.com/ludo-technologies/larascan/domain"

// Framework base types referenced by predicates
const (
	ModelBase       = `Illuminate\Database\Eloquent\Model`
	FormRequestBase = `Illuminate\Foundation\Http\FormRequest`
	ShouldQueue     = `Illuminate\Contracts\Queue\ShouldQueue`
	DBFacade        = `Illuminate\Support\Facades\DB`
)

// CommandVerbs are the accepted leading verbs for console command class names
var CommandVerbs = []string{
	"Send", "Process", "Generate", "Sync", "Import", "Export", "Clean", "Cleanup",
	"Prune", "Backup", "Run", "Check", "Update", "Create", "Delete", "Make", "Publish",
	"Install", "Refresh", "Seed", "Migrate", "Cache", "Clear", "Notify", "Calculate",
	"Fetch", "Build", "Dispatch", "Archive", "Validate", "Reset", "Rebuild",
}

// JobVerbs are the accepted leading verbs for queued job class names
var JobVerbs = []string{
	"Send", "Process", "Generate", "Sync", "Import", "Export", "Calculate", "Update",
	"Create", "Delete", "Notify", "Handle", "Fetch", "Store", "Upload", "Download",
	"Resize", "Compress", "Cleanup", "Prune", "Refresh", "Rebuild", "Validate",
	"Dispatch", "Publish", "Archive", "Charge", "Index",
}

// ListenerVerbs are the accepted leading verbs for event listener class names
var ListenerVerbs = []string{
	"Send", "Notify", "Log", "Update", "Create", "Record", "Dispatch", "Queue",
	"Handle", "Sync", "Clear", "Invalidate", "Broadcast", "Track", "Process", "Store",
}

// MiddlewareVerbs are the accepted leading verbs for middleware class names
var MiddlewareVerbs = []string{
	"Ensure", "Verify", "Check", "Validate", "Authenticate", "Authorize", "Redirect",
	"Set", "Add", "Handle", "Throttle", "Trim", "Convert", "Encrypt", "Prevent",
	"Trust", "Log", "Force", "Require", "Restrict",
}

// EventSuffixes are the accepted past-tense endings for event class names
var EventSuffixes = []string{
	"Created", "Updated", "Deleted", "Saved", "Restored", "Registered", "Verified",
	"Sent", "Received", "Processed", "Completed", "Failed", "Started", "Finished",
	"Cancelled", "Canceled", "Approved", "Rejected", "Published", "Shipped", "Placed",
	"Paid", "Changed", "Uploaded", "Imported", "Exported", "Expired", "Scheduled",
	"Submitted", "Confirmed", "Assigned", "Removed", "Added", "LoggedIn", "LoggedOut",
	"Reset", "Dispatched",
}

// PolicyMethods are the authorization abilities a policy may expose
var PolicyMethods = []string{
	"viewAny", "view", "create", "update", "delete", "restore", "forceDelete", "before", "__construct",
}

// ActionMethods is the single entry point of an action class
var ActionMethods = []string{"__construct", "handle"}

// ObserverMethods are the Eloquent model lifecycle hooks
var ObserverMethods = []string{
	"retrieved", "creating", "created", "updating", "updated", "saving", "saved",
	"deleting", "deleted", "trashed", "forceDeleting", "forceDeleted", "restoring",
	"restored", "replicating", "__construct",
}

// ResourceMethods are the transformation hooks of an API resource
var ResourceMethods = []string{"toArray", "with", "withResponse", "paginationInformation", "__construct"}

// ControllerMethods are the resource controller verbs plus constructor, invokable and middleware
var ControllerMethods = []string{
	"index", "create", "store", "show", "edit", "update", "destroy",
	"__construct", "__invoke", "middleware",
}

// HTTPImports are the request-scoped types that must not leak below the HTTP layer
var HTTPImports = []string{
	`Illuminate\Http\Request`,
	`Illuminate\Support\Facades\Request`,
	`Illuminate\Support\Facades\Session`,
	`Illuminate\Support\Facades\Cookie`,
}

// HTTPHelpers are global helpers that reach into the request or the container
var HTTPHelpers = []string{"request", "session", "app", "resolve"}

// QueryMethods are Eloquent builder entry points called statically on a model
var QueryMethods = []string{
	"where", "find", "findOrFail", "all", "query", "first", "create", "firstOrCreate",
	"with", "whereIn", "count", "paginate", "get", "pluck", "select", "orderBy",
	"latest", "oldest",
}

// VoltMarkers identify single-file Volt components
var VoltMarkers = []string{
	`Livewire\Volt`,
	"new class extends Component",
	"@volt",
	"Volt::",
}

// facadeNames are static call targets that are never Eloquent models
var facadeNames = map[string]bool{
	"App": true, "Arr": true, "Artisan": true, "Auth": true, "Bus": true, "Cache": true,
	"Carbon": true, "Config": true, "Cookie": true, "Crypt": true, "Event": true,
	"File": true, "Gate": true, "Hash": true, "Http": true, "Lang": true, "Log": true,
	"Mail": true, "Notification": true, "Queue": true, "Redirect": true, "Redis": true,
	"Request": true, "Response": true, "Route": true, "Schema": true, "Session": true,
	"Storage": true, "Str": true, "URL": true, "Validator": true, "View": true,
}

// References maps a category to its documentation page
var References = map[domain.Category]string{
	domain.CategoryCommand:         "https://laravel.com/docs/artisan#writing-commands",
	domain.CategoryJob:             "https://laravel.com/docs/queues#creating-jobs",
	domain.CategoryModel:           "https://laravel.com/docs/eloquent#mass-assignment",
	domain.CategoryEvent:           "https://laravel.com/docs/events#defining-events",
	domain.CategoryListener:        "https://laravel.com/docs/events#defining-listeners",
	domain.CategoryMiddleware:      "https://laravel.com/docs/middleware#defining-middleware",
	domain.CategoryPolicy:          "https://laravel.com/docs/authorization#creating-policies",
	domain.CategoryServiceProvider: "https://laravel.com/docs/providers#writing-service-providers",
	domain.CategoryResource:        "https://laravel.com/docs/eloquent-resources",
	domain.CategoryObserver:        "https://laravel.com/docs/eloquent#observers",
	domain.CategoryFormRequest:     "https://laravel.com/docs/validation#form-request-validation",
	domain.CategoryAction:          "https://laravel.com/docs/container#automatic-injection",
	domain.CategoryController:      "https://laravel.com/docs/controllers#resource-controllers",
	domain.CategoryLivewire:        "https://livewire.laravel.com/docs/components",
	domain.CategoryVolt:            "https://livewire.laravel.com/docs/volt",
}

// exampleNames are well-formed class names used in remediation hints
var exampleNames = map[domain.Category]string{
	domain.CategoryCommand:         "PruneStaleSessions",
	domain.CategoryJob:             "SendWelcomeEmail",
	domain.CategoryModel:           "Invoice",
	domain.CategoryEvent:           "OrderShipped",
	domain.CategoryListener:        "SendShipmentNotification",
	domain.CategoryMiddleware:      "EnsureUserIsSubscribed",
	domain.CategoryPolicy:          "PostPolicy",
	domain.CategoryServiceProvider: "BillingServiceProvider",
	domain.CategoryResource:        "UserResource",
	domain.CategoryObserver:        "UserObserver",
	domain.CategoryFormRequest:     "StoreUserRequest",
	domain.CategoryAction:          "CreateInvoiceAction",
	domain.CategoryController:      "PostController",
	domain.CategoryLivewire:        "ShowPosts",
}
