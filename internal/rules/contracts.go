package rules

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/larascan/domain"
)

// ParamKind is the role a positional controller parameter must play
type ParamKind string

const (
	ParamModel       ParamKind = "Model"
	ParamFormRequest ParamKind = "FormRequest"
	ParamAction      ParamKind = "Action"
)

// ContractChecker decides whether a declared parameter satisfies a kind
type ContractChecker struct {
	// ActionNamespace is the namespace whose classes count as actions
	ActionNamespace string
}

// Satisfies reports whether p can play kind, and why not when it cannot
func (cc ContractChecker) Satisfies(p domain.ParameterDescriptor, kind ParamKind) (bool, string) {
	if p.Type == "" {
		return false, "it has no declared type"
	}
	switch kind {
	case ParamModel:
		if p.IsSubtypeOf(ModelBase) {
			return true, ""
		}
		return false, fmt.Sprintf("`%s` does not extend %s", domain.ShortClassName(p.Type), ModelBase)
	case ParamFormRequest:
		if p.IsSubtypeOf(FormRequestBase) {
			return true, ""
		}
		return false, fmt.Sprintf("`%s` does not extend %s", domain.ShortClassName(p.Type), FormRequestBase)
	case ParamAction:
		ns := strings.Trim(cc.ActionNamespace, `\`)
		if ns != "" && strings.HasPrefix(p.Type, ns+`\`) {
			return true, ""
		}
		if strings.HasSuffix(domain.ShortClassName(p.Type), "Action") {
			return true, ""
		}
		return false, fmt.Sprintf("`%s` is neither in %s nor named *Action", domain.ShortClassName(p.Type), ns)
	}
	return false, fmt.Sprintf("unknown parameter kind %q", kind)
}

// ParameterContract requires method, when declared on the class, to accept
// at least the listed kinds in order. Extra trailing parameters are allowed.
func ParameterContract(category domain.Category, checker ContractChecker, method string, kinds ...ParamKind) Predicate {
	noun := Noun(category)
	kinds = append([]ParamKind(nil), kinds...)
	signature := make([]string, len(kinds))
	for i, k := range kinds {
		signature[i] = string(k)
	}
	expected := fmt.Sprintf("%s(%s, ...)", method, strings.Join(signature, ", "))

	return Predicate{
		ID:          RuleParameterContract,
		Description: fmt.Sprintf("%s %s", noun, expected),
		Check: func(class *domain.ClassDescriptor) domain.Outcome {
			var m domain.MethodDescriptor
			found := false
			for _, own := range class.OwnMethods() {
				if strings.EqualFold(own.Name, method) {
					m, found = own, true
					break
				}
			}
			if !found {
				return domain.Pass()
			}

			fail := func(statement string, args ...any) domain.Outcome {
				return newViolation(category, RuleParameterContract, class).
					method(m).
					title("%s `%s()` must follow the %s signature", noun, method, expected).
					statement(statement, args...).
					reason("Validation belongs in a form request, work belongs in an action and route model binding resolves the model; the controller only wires them together.").
					options(signature).
					fix("Change the signature of `%s()` to `%s`.", method, expected).
					example(contractExample(method, kinds)).
					outcome()
			}

			if len(m.Parameters) < len(kinds) {
				return fail("`%s::%s()` takes %d parameter(s), at least %d are required.",
					class.ShortName, method, len(m.Parameters), len(kinds))
			}
			for i, kind := range kinds {
				p := m.Parameters[i]
				if ok, why := checker.Satisfies(p, kind); !ok {
					return fail("Parameter #%d `$%s` of `%s::%s()` must be a %s: %s.",
						i+1, p.Name, class.ShortName, method, kind, why)
				}
			}
			return domain.Pass()
		},
	}
}

func contractExample(method string, kinds []ParamKind) string {
	params := make([]string, len(kinds))
	for i, k := range kinds {
		switch k {
		case ParamModel:
			params[i] = "Post $post"
		case ParamFormRequest:
			prefix := "Store"
			if method == "update" {
				prefix = "Update"
			}
			params[i] = prefix + "PostRequest $request"
		case ParamAction:
			params[i] = strings.ToUpper(method[:1]) + method[1:] + "PostAction $action"
		}
	}
	return fmt.Sprintf("public function %s(%s)", method, strings.Join(params, ", "))
}
