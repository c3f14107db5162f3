package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/larascan/domain"
)

const controllerSource = `<?php

namespace App\Http\Controllers;

use App\Http\Requests\StorePostRequest;
use App\Models\Post;
use Illuminate\Http\Request as HttpRequest;
use Illuminate\Support\Facades\DB;

class PostController extends Controller implements \JsonSerializable
{
    protected $middleware = [];

    public function store(StorePostRequest $request, ?Post $post = null): self
    {
        $count = DB::table('posts')->count();
        logger('stored');
        return $this;
    }

    private function helper(int ...$ids)
    {
        return static::class;
    }
}
`

func parse(t *testing.T, source string) *FileResult {
	t.Helper()
	p := NewParser()
	defer p.Close()

	result, err := p.ParseFile(context.Background(), "app/Test.php", []byte(source))
	require.NoError(t, err)
	return result
}

func TestParseFile_ClassIdentity(t *testing.T) {
	result := parse(t, controllerSource)

	assert.Equal(t, `App\Http\Controllers`, result.Namespace)
	require.Len(t, result.Classes, 1)

	class := result.Classes[0]
	assert.Equal(t, `App\Http\Controllers\PostController`, class.Name)
	assert.Equal(t, "PostController", class.ShortName)
	assert.Equal(t, domain.ClassKindClass, class.Kind)
	assert.Equal(t, "app/Test.php", class.File)
	assert.False(t, class.Abstract)
	assert.Equal(t, 10, class.Span.StartLine)
	assert.Equal(t, 25, class.Span.EndLine)
	assert.Equal(t, controllerSource, class.Source)
}

func TestParseFile_ResolvesParentAndInterfaces(t *testing.T) {
	class := parse(t, controllerSource).Classes[0]

	// unqualified parent resolves against the current namespace
	assert.Equal(t, `App\Http\Controllers\Controller`, class.Parent)
	assert.Equal(t, []string{"JsonSerializable"}, class.Interfaces)
}

func TestParseFile_Imports(t *testing.T) {
	result := parse(t, controllerSource)

	var names []string
	for _, imp := range result.Imports {
		names = append(names, imp.Name)
	}
	assert.Equal(t, []string{
		`App\Http\Requests\StorePostRequest`,
		`App\Models\Post`,
		`Illuminate\Http\Request`,
		`Illuminate\Support\Facades\DB`,
	}, names)
	assert.Equal(t, 7, result.Imports[2].Span.StartLine)
	assert.Equal(t, result.Imports, result.Classes[0].Imports)
}

func TestParseFile_Members(t *testing.T) {
	class := parse(t, controllerSource).Classes[0]

	require.Len(t, class.Properties, 1)
	assert.Equal(t, "middleware", class.Properties[0].Name)
	assert.Equal(t, domain.VisibilityProtected, class.Properties[0].Visibility)
	assert.Equal(t, 12, class.Properties[0].Span.StartLine)

	require.Len(t, class.Methods, 2)
	store := class.Methods[0]
	assert.Equal(t, "store", store.Name)
	assert.Equal(t, domain.VisibilityPublic, store.Visibility)
	assert.Equal(t, class.Name, store.DeclaringClass)
	assert.Equal(t, class.Name, store.ReturnType, "self resolves to the class")
	assert.True(t, class.IsOwnMethod(store))

	require.Len(t, store.Parameters, 2)
	assert.Equal(t, "request", store.Parameters[0].Name)
	assert.Equal(t, `App\Http\Requests\StorePostRequest`, store.Parameters[0].Type)
	assert.Equal(t, `App\Models\Post`, store.Parameters[1].Type)
	assert.True(t, store.Parameters[1].Nullable)

	helper := class.Methods[1]
	assert.Equal(t, domain.VisibilityPrivate, helper.Visibility)
	require.Len(t, helper.Parameters, 1)
	assert.Equal(t, "int", helper.Parameters[0].Type)
	assert.True(t, helper.Parameters[0].Variadic)
}

func TestParseFile_Calls(t *testing.T) {
	class := parse(t, controllerSource).Classes[0]

	require.Len(t, class.Calls, 1)
	assert.Equal(t, "logger", class.Calls[0].Function)
	assert.Equal(t, 17, class.Calls[0].Span.StartLine)

	require.NotEmpty(t, class.StaticCalls)
	assert.Equal(t, `Illuminate\Support\Facades\DB`, class.StaticCalls[0].Class)
	assert.Equal(t, "table", class.StaticCalls[0].Function)
	assert.Equal(t, 16, class.StaticCalls[0].Span.StartLine)
}

func TestParseFile_Kinds(t *testing.T) {
	result := parse(t, `<?php
namespace App\Support;

interface HasSlug {}
trait Sluggable {}
enum Status: string { case Draft = 'draft'; }
abstract class BaseAction {}
final class Publish extends BaseAction implements HasSlug
{
    use Sluggable;
}
`)

	kinds := map[string]domain.ClassKind{}
	for _, c := range result.Classes {
		kinds[c.ShortName] = c.Kind
	}
	assert.Equal(t, map[string]domain.ClassKind{
		"HasSlug":    domain.ClassKindInterface,
		"Sluggable":  domain.ClassKindTrait,
		"Status":     domain.ClassKindEnum,
		"BaseAction": domain.ClassKindClass,
		"Publish":    domain.ClassKindClass,
	}, kinds)

	base := result.Classes[3]
	assert.True(t, base.Abstract)
	assert.True(t, base.IsExempt())

	publish := result.Classes[4]
	assert.False(t, publish.Abstract)
	assert.Equal(t, `App\Support\BaseAction`, publish.Parent)
	assert.Equal(t, []string{`App\Support\HasSlug`}, publish.Interfaces)
	assert.Equal(t, []string{`App\Support\Sluggable`}, publish.Traits)
}

func TestParseFile_NoNamespace(t *testing.T) {
	result := parse(t, "<?php\nclass Helper {}\n")

	require.Len(t, result.Classes, 1)
	assert.Equal(t, "Helper", result.Classes[0].Name)
	assert.Equal(t, "", result.Classes[0].Namespace)
}

func TestParseString(t *testing.T) {
	p := NewParser()
	defer p.Close()

	result, err := p.ParseString("<?php\nnamespace App;\nclass A {}\n")
	require.NoError(t, err)
	assert.Equal(t, "<input>", result.Path)
	assert.Equal(t, `App\A`, result.Classes[0].Name)
}

func TestNameResolver(t *testing.T) {
	r := newNameResolver()
	r.setNamespace(`\App\Jobs\`)
	r.addImport(`Illuminate\Support\Facades\Mail`, "")
	r.addImport(`\Illuminate\Http\Request`, "HttpRequest")
	r.addImport(`Illuminate\Database`, "")

	tests := []struct {
		in   string
		want string
	}{
		{"Mail", `Illuminate\Support\Facades\Mail`},
		{"mail", `Illuminate\Support\Facades\Mail`},
		{"HttpRequest", `Illuminate\Http\Request`},
		{`Database\Eloquent\Model`, `Illuminate\Database\Eloquent\Model`},
		{`\Exception`, "Exception"},
		{"SendInvoice", `App\Jobs\SendInvoice`},
		{`namespace\Helpers\Retry`, `App\Jobs\Helpers\Retry`},
		{"String", "string"},
		{"static", "static"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, r.resolveClass(tt.in))
		})
	}

	assert.Equal(t, "session", resolveFunction(`\Session`))
	assert.Equal(t, "Mail", lastSegment(`Illuminate\Support\Facades\Mail`))
}
