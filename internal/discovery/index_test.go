package discovery

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/larascan/domain"
	"github.com/ludo-technologies/larascan/internal/parser"
)

func parseAll(t *testing.T, files map[string]string) []*domain.ClassDescriptor {
	t.Helper()
	p := parser.NewParser()
	defer p.Close()

	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var classes []*domain.ClassDescriptor
	for _, path := range paths {
		result, err := p.ParseFile(context.Background(), path, []byte(files[path]))
		require.NoError(t, err)
		classes = append(classes, result.Classes...)
	}
	return classes
}

func linked(t *testing.T, files map[string]string) *Index {
	t.Helper()
	idx := NewIndex(parseAll(t, files))
	idx.Link()
	return idx
}

func lookup(t *testing.T, idx *Index, name string) *domain.ClassDescriptor {
	t.Helper()
	c, ok := idx.Lookup(name)
	require.True(t, ok, "class %s not indexed", name)
	return c
}

var hierarchyFiles = map[string]string{
	"app/Actions/BaseAction.php": `<?php
namespace App\Actions;

abstract class BaseAction implements Contracts\Action
{
    public function handle() {}
    protected function authorize() {}
    private function secret() {}
}
`,
	"app/Actions/Contracts/Action.php": `<?php
namespace App\Actions\Contracts;

interface Action extends Runnable {}
`,
	"app/Actions/Contracts/Runnable.php": `<?php
namespace App\Actions\Contracts;

interface Runnable {}
`,
	"app/Actions/Concerns/Loggable.php": `<?php
namespace App\Actions\Concerns;

trait Loggable
{
    protected $channel = 'stack';

    public function log() {}
    public function handle() {}
}
`,
	"app/Actions/PublishPost.php": `<?php
namespace App\Actions;

use App\Actions\Concerns\Loggable;

class PublishPost extends BaseAction
{
    use Loggable;

    public function handle() {}
}
`,
}

func TestIndex_AncestorsAndInterfaces(t *testing.T) {
	idx := linked(t, hierarchyFiles)
	publish := lookup(t, idx, `App\Actions\PublishPost`)

	assert.Equal(t, []string{`App\Actions\BaseAction`}, publish.Ancestors)
	assert.Equal(t, []string{
		`App\Actions\Contracts\Action`,
		`App\Actions\Contracts\Runnable`,
	}, publish.Interfaces)
}

func TestIndex_TraitAndInheritedMethods(t *testing.T) {
	idx := linked(t, hierarchyFiles)
	publish := lookup(t, idx, `App\Actions\PublishPost`)

	var names []string
	for _, m := range publish.Methods {
		names = append(names, m.Name)
	}
	// own handle wins over both the trait's and the parent's; private parent methods stay hidden
	assert.Equal(t, []string{"handle", "log", "authorize"}, names)

	log, ok := publish.Method("log")
	require.True(t, ok)
	assert.Equal(t, publish.Name, log.DeclaringClass)
	assert.Equal(t, "app/Actions/Concerns/Loggable.php", log.File)
	assert.False(t, publish.IsOwnMethod(log), "trait methods live in the trait file")

	authorize, _ := publish.Method("authorize")
	assert.Equal(t, `App\Actions\BaseAction`, authorize.DeclaringClass)

	own := publish.OwnMethods()
	require.Len(t, own, 1)
	assert.Equal(t, "handle", own[0].Name)

	channel, ok := publish.Property("channel")
	require.True(t, ok)
	assert.Equal(t, publish.Name, channel.DeclaringClass)
}

func TestIndex_FrameworkAncestors(t *testing.T) {
	idx := linked(t, map[string]string{
		"app/Models/User.php": `<?php
namespace App\Models;

use Illuminate\Foundation\Auth\User as Authenticatable;

class User extends Authenticatable {}
`,
		"app/Models/Admin.php": `<?php
namespace App\Models;

class Admin extends User {}
`,
	})

	admin := lookup(t, idx, `App\Models\Admin`)
	assert.Equal(t, []string{
		`App\Models\User`,
		`Illuminate\Foundation\Auth\User`,
		`Illuminate\Database\Eloquent\Model`,
	}, admin.Ancestors)
}

func TestIndex_ParameterTypeHierarchy(t *testing.T) {
	idx := linked(t, map[string]string{
		"app/Http/Requests/StorePostRequest.php": `<?php
namespace App\Http\Requests;

use Illuminate\Foundation\Http\FormRequest;

class StorePostRequest extends FormRequest {}
`,
		"app/Http/Controllers/PostController.php": `<?php
namespace App\Http\Controllers;

use App\Http\Requests\StorePostRequest;
use Illuminate\Foundation\Http\FormRequest;

class PostController
{
    public function store(StorePostRequest $request) {}
    public function update(FormRequest $request) {}
}
`,
	})

	controller := lookup(t, idx, `App\Http\Controllers\PostController`)
	store, _ := controller.Method("store")
	assert.True(t, store.Parameters[0].IsSubtypeOf(`Illuminate\Foundation\Http\FormRequest`))

	update, _ := controller.Method("update")
	assert.Equal(t, []string{`Illuminate\Http\Request`}, update.Parameters[0].TypeHierarchy)
}

func TestIndex_DuplicatesAndCycles(t *testing.T) {
	classes := parseAll(t, map[string]string{
		"a.php": "<?php\nnamespace App;\nclass Loop extends Knot {}\n",
		"b.php": "<?php\nnamespace App;\nclass Knot extends Loop {}\n",
		"c.php": "<?php\nnamespace App;\nclass loop {}\n",
	})

	idx := NewIndex(classes)
	assert.Equal(t, []string{`App\loop`}, idx.Duplicates())

	out := idx.Link()
	require.Len(t, out, 2)

	loop := lookup(t, idx, `\App\Loop`)
	assert.Contains(t, loop.Ancestors, `App\Knot`)
}
