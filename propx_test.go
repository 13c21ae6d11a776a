/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/


package propx_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/propx"
	"dirpx.dev/propx/apis"
	"dirpx.dev/propx/class"
	"dirpx.dev/propx/instance"
	"dirpx.dev/propx/property"
	"dirpx.dev/propx/validate"
)

func multiply(v int) int { return v * 2 }

func newHost(c *class.Class, kwargs map[string]any) *instance.Instance {
	return instance.New(c, kwargs)
}

func mustGet(t *testing.T, h *instance.Instance, name string) any {
	t.Helper()
	v, err := h.Get(name)
	require.NoError(t, err)
	return v
}

func TestBasicProperty(t *testing.T) {
	basic := class.MustNew("BasicProperties",
		class.Attr("base_attr", property.New()),
	)

	assert.Equal(t, "base_attr", mustGet(t, newHost(basic, map[string]any{"base_attr": "base_attr"}), "base_attr"))
	assert.Nil(t, mustGet(t, newHost(basic, nil), "base_attr"))

	h := newHost(basic, map[string]any{"base_attr": "base_attr"})
	require.NoError(t, h.Set("base_attr", "new_val"))
	assert.Equal(t, "new_val", mustGet(t, h, "base_attr"))
}

func TestBasicProperty_FalsyInputIsAValue(t *testing.T) {
	c := class.MustNew("Falsy",
		class.Attr("flag", property.New(property.WithLiteral(true))),
		class.Attr("count", property.New(property.WithLiteral(7))),
	)
	h := newHost(c, map[string]any{"flag": false, "count": 0})
	assert.Equal(t, false, mustGet(t, h, "flag"))
	assert.Equal(t, 0, mustGet(t, h, "count"))
}

func TestDefaultedProperty(t *testing.T) {
	defaulted := class.MustNew("DefaultedProperties",
		class.Attr("default_attr", property.New(property.WithLiteral("default_attr"))),
	)

	assert.Equal(t, "default_attr", mustGet(t, newHost(defaulted, nil), "default_attr"))
	assert.Equal(t, "kwarg_val", mustGet(t, newHost(defaulted, map[string]any{"default_attr": "kwarg_val"}), "default_attr"))

	h := newHost(defaulted, nil)
	require.NoError(t, h.Set("default_attr", "explicit"))
	assert.Equal(t, "explicit", mustGet(t, h, "default_attr"))

	err := h.Set("default_attr", 1)
	require.ErrorIs(t, err, apis.ErrTypeMismatch)
	var pe *apis.PropertyError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "default_attr", pe.Property)
	assert.Equal(t, "DefaultedProperties", pe.Class)
	assert.Equal(t, 1, pe.Value)
	assert.Equal(t, "default_attr", pe.Default)
	assert.Equal(t, "explicit", mustGet(t, h, "default_attr"), "failed write must not touch the slot")
}

func TestDefaultedProperty_MismatchedInput(t *testing.T) {
	c := class.MustNew("Typed", class.Attr("port", property.New(property.WithLiteral(8080))))

	_, err := newHost(c, map[string]any{"port": "80"}).Get("port")
	assert.ErrorIs(t, err, apis.ErrTypeMismatch)
}

func TestRequiredProperty(t *testing.T) {
	required := class.MustNew("RequiredProperties",
		class.Attr("required_attr", property.New(property.WithRequired(true))),
		class.Attr("defaulted_required_attr", property.New(
			property.WithLiteral("defaulted_required_attr"),
			property.WithRequired(true),
		)),
	)

	h := newHost(required, nil)
	_, err := h.Get("required_attr")
	require.ErrorIs(t, err, apis.ErrRequiredValueAbsent)
	var pe *apis.PropertyError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "required_attr", pe.Property)
	assert.Equal(t, "RequiredProperties", pe.Class)
	assert.Same(t, h, pe.Instance)
	assert.Contains(t, err.Error(), h.ID())

	assert.Equal(t, "defaulted_required_attr", mustGet(t, h, "defaulted_required_attr"))
	assert.Equal(t, "given", mustGet(t, newHost(required, map[string]any{"required_attr": "given"}), "required_attr"))

	// An explicit nil input counts as absent.
	_, err = newHost(required, map[string]any{"required_attr": nil}).Get("required_attr")
	assert.ErrorIs(t, err, apis.ErrRequiredValueAbsent)
}

func dependentClass() *class.Class {
	base := property.New()
	nested := property.New(property.WithSuperkeys(property.Path("parent_1", "parent_2")))
	return class.MustNew("DependentProperties",
		class.Attr("base_attr", base),
		class.Attr("dependent_attr", property.New(property.WithDefault(property.DependsOn(base)))),
		class.Attr("updating_dependent_attr", property.New(
			property.WithDefault(property.DependsOn(base)),
			property.WithSingleton(false),
		)),
		class.Attr("sdproperty_dependent_attr", property.New(property.WithSuperkeys(property.From(base)))),
		class.Attr("nested_parent_attr", nested),
		class.Attr("nested_dependent_attr", property.New(property.WithSuperkeys(property.From(nested)))),
	)
}

func TestDependentProperty(t *testing.T) {
	dependent := dependentClass()

	t.Run("has base value", func(t *testing.T) {
		h := newHost(dependent, map[string]any{"base_attr": "base_attr"})
		assert.Equal(t, "base_attr", mustGet(t, h, "dependent_attr"))
	})

	t.Run("has own value", func(t *testing.T) {
		h := newHost(dependent, map[string]any{"base_attr": "base_attr", "dependent_attr": "dependent_attr"})
		assert.Equal(t, "dependent_attr", mustGet(t, h, "dependent_attr"))
	})

	t.Run("overwritten on assignment", func(t *testing.T) {
		h := newHost(dependent, map[string]any{"base_attr": "base_attr"})
		assert.Equal(t, "base_attr", mustGet(t, h, "dependent_attr"))
		require.NoError(t, h.Set("dependent_attr", "dependent_attr"))
		assert.Equal(t, "dependent_attr", mustGet(t, h, "dependent_attr"))
	})

	t.Run("not changed when base changes after", func(t *testing.T) {
		h := newHost(dependent, map[string]any{"base_attr": "base_attr"})
		assert.Equal(t, "base_attr", mustGet(t, h, "dependent_attr"))
		require.NoError(t, h.Set("base_attr", "new_underlying_attr"))
		assert.Equal(t, "base_attr", mustGet(t, h, "dependent_attr"))
	})

	t.Run("changed when base changes before", func(t *testing.T) {
		h := newHost(dependent, map[string]any{"base_attr": "base_attr"})
		require.NoError(t, h.Set("base_attr", "new_attr"))
		assert.Equal(t, "new_attr", mustGet(t, h, "dependent_attr"))
	})

	t.Run("non-singleton follows base", func(t *testing.T) {
		h := newHost(dependent, map[string]any{"base_attr": "base_attr"})
		assert.Equal(t, "base_attr", mustGet(t, h, "updating_dependent_attr"))
		require.NoError(t, h.Set("base_attr", "new_underlying_attr"))
		assert.Equal(t, "new_underlying_attr", mustGet(t, h, "updating_dependent_attr"))
	})

	t.Run("non-singleton keeps explicit writes until unset", func(t *testing.T) {
		h := newHost(dependent, map[string]any{"base_attr": "base_attr"})
		require.NoError(t, h.Set("updating_dependent_attr", "pinned"))
		require.NoError(t, h.Set("base_attr", "other"))
		assert.Equal(t, "pinned", mustGet(t, h, "updating_dependent_attr"))

		h.Unset("updating_dependent_attr")
		assert.Equal(t, "other", mustGet(t, h, "updating_dependent_attr"))
	})

	t.Run("non-singleton ignores input", func(t *testing.T) {
		h := newHost(dependent, map[string]any{"base_attr": "base_attr", "updating_dependent_attr": "kwarg"})
		assert.Equal(t, "base_attr", mustGet(t, h, "updating_dependent_attr"))
	})

	t.Run("descriptor superkey", func(t *testing.T) {
		h := newHost(dependent, map[string]any{
			"base_attr": map[string]any{"sdproperty_dependent_attr": "from_base"},
		})
		assert.Equal(t, "from_base", mustGet(t, h, "sdproperty_dependent_attr"))
	})

	t.Run("nested descriptor superkey", func(t *testing.T) {
		h := newHost(dependent, map[string]any{
			"parent_1": map[string]any{
				"parent_2": map[string]any{
					"nested_parent_attr": map[string]any{"nested_dependent_attr": "deep"},
				},
			},
		})
		assert.Equal(t, "deep", mustGet(t, h, "nested_dependent_attr"))
	})

	t.Run("descriptor superkey not a mapping", func(t *testing.T) {
		h := newHost(dependent, map[string]any{"base_attr": "scalar"})
		_, err := h.Get("sdproperty_dependent_attr")
		require.ErrorIs(t, err, apis.ErrSuperkeyNotMapping)
		var pe *apis.PropertyError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "sdproperty_dependent_attr", pe.Property)
		assert.Equal(t, "scalar", pe.Value)
	})
}

func combineClass() *class.Class {
	return class.MustNew("CombineWithDefaultsProperties",
		class.Attr("dict_combine_attr", property.New(
			property.WithLiteral(map[string]any{"key1": "val1", "key2": "val2"}),
		)),
		class.Attr("dict_overwrite_attr", property.New(
			property.WithLiteral(map[string]any{"key": "val"}),
			property.WithCombineDefaults(false),
		)),
		class.Attr("list_combine_attr", property.New(property.WithLiteral([]any{"elem1"}))),
		class.Attr("list_overwrite_attr", property.New(
			property.WithLiteral([]any{"elem1"}),
			property.WithCombineDefaults(false),
		)),
	)
}

func TestCombineWithDefaults(t *testing.T) {
	combine := combineClass()

	t.Run("dict combined", func(t *testing.T) {
		h := newHost(combine, map[string]any{
			"dict_combine_attr": map[string]any{"new_key": "new_val", "key2": "updated_val"},
		})
		assert.Equal(t,
			map[string]any{"key1": "val1", "new_key": "new_val", "key2": "updated_val"},
			mustGet(t, h, "dict_combine_attr"))
	})

	t.Run("dict overwritten", func(t *testing.T) {
		h := newHost(combine, map[string]any{"dict_overwrite_attr": map[string]any{"new_key": "new_val"}})
		assert.Equal(t, map[string]any{"new_key": "new_val"}, mustGet(t, h, "dict_overwrite_attr"))
	})

	t.Run("dict not shared between instances", func(t *testing.T) {
		h1 := newHost(combine, nil)
		v := mustGet(t, h1, "dict_overwrite_attr")
		assert.Equal(t, map[string]any{"key": "val"}, v)
		v.(map[string]any)["leaked"] = true

		require.NoError(t, h1.Set("dict_overwrite_attr", map[string]any{"new_key": "new_val"}))
		assert.Equal(t, map[string]any{"new_key": "new_val"}, mustGet(t, h1, "dict_overwrite_attr"))

		h2 := newHost(combine, nil)
		assert.Equal(t, map[string]any{"key": "val"}, mustGet(t, h2, "dict_overwrite_attr"))
	})

	t.Run("list combined default first", func(t *testing.T) {
		h := newHost(combine, map[string]any{"list_combine_attr": []any{"elem2", "elem1"}})
		assert.Equal(t, []any{"elem1", "elem2"}, mustGet(t, h, "list_combine_attr"))
	})

	t.Run("list overwritten", func(t *testing.T) {
		h := newHost(combine, map[string]any{"list_overwrite_attr": []any{"elem2"}})
		assert.Equal(t, []any{"elem2"}, mustGet(t, h, "list_overwrite_attr"))
	})

	t.Run("list not shared between instances", func(t *testing.T) {
		h1 := newHost(combine, nil)
		v := mustGet(t, h1, "list_overwrite_attr").([]any)
		require.NoError(t, h1.Set("list_overwrite_attr", append(v, "elem2")))
		assert.Equal(t, []any{"elem1", "elem2"}, mustGet(t, h1, "list_overwrite_attr"))

		assert.Equal(t, []any{"elem1"}, mustGet(t, newHost(combine, nil), "list_overwrite_attr"))
	})

	t.Run("write replaces combined value", func(t *testing.T) {
		h := newHost(combine, map[string]any{
			"dict_combine_attr": map[string]any{"new_key": "new_val", "key2": "updated_val"},
		})
		assert.Len(t, mustGet(t, h, "dict_combine_attr"), 3)
		require.NoError(t, h.Set("dict_combine_attr", map[string]any{"overwritten_key": "overwritten_val"}))
		assert.Equal(t, map[string]any{"overwritten_key": "overwritten_val"}, mustGet(t, h, "dict_combine_attr"))
	})
}

func TestTransformProperty(t *testing.T) {
	transform := class.MustNew("TransformProperties",
		class.Attr("transform_attr", property.New(property.WithTransform(func(x int) int { return x + 1 }))),
		class.Attr("invalid_transform_attr", property.New(property.WithTransform("uncallable"))),
		class.Attr("transform_func_attr", property.New(property.WithTransform(multiply))),
		class.Attr("transform_default_attr", property.New(property.WithLiteral(3), property.WithTransform(multiply))),
		class.Attr("failing_transform_attr", property.New(
			property.WithLiteral("x"),
			property.WithTransform(func(v any) (any, error) { return nil, errors.New("boom") }),
		)),
	)

	assert.Equal(t, 2, mustGet(t, newHost(transform, map[string]any{"transform_attr": 1}), "transform_attr"))
	assert.Equal(t, 4, mustGet(t, newHost(transform, map[string]any{"transform_func_attr": 2}), "transform_func_attr"))
	assert.Equal(t, 6, mustGet(t, newHost(transform, nil), "transform_default_attr"))

	_, err := newHost(transform, nil).Get("invalid_transform_attr")
	assert.ErrorIs(t, err, apis.ErrTransformNotCallable)

	_, err = newHost(transform, nil).Get("failing_transform_attr")
	assert.ErrorIs(t, err, apis.ErrTransformFailed)
	assert.ErrorContains(t, err, "boom")

	// Writes bypass the transform.
	h := newHost(transform, nil)
	require.NoError(t, h.Set("transform_func_attr", 5))
	assert.Equal(t, 5, mustGet(t, h, "transform_func_attr"))
}

func callbackClass() *class.Class {
	return class.MustNew("CallbackProperties",
		class.Attr("base_attr", property.New()),
		class.Callback("get_callback_attr", func(h apis.Host) (any, error) {
			base, err := propx.Get[string](h, "base_attr")
			if err != nil {
				return nil, err
			}
			if base == "" {
				return "new_base_default", nil
			}
			return base + "_callback", nil
		}),
	)
}

func TestCallbackProperty(t *testing.T) {
	callback := callbackClass()

	assert.Equal(t, "new_base_default", mustGet(t, newHost(callback, nil), "get_callback_attr"))
	assert.Equal(t, "get_callback_attr",
		mustGet(t, newHost(callback, map[string]any{"get_callback_attr": "get_callback_attr"}), "get_callback_attr"))
	assert.Equal(t, "base_attr_callback",
		mustGet(t, newHost(callback, map[string]any{"base_attr": "base_attr"}), "get_callback_attr"))
}

func TestCallbackProperty_ErrorIsComputeFailed(t *testing.T) {
	c := class.MustNew("Failing",
		class.Callback("attr", func(apis.Host) (any, error) { return nil, errors.New("no value today") }),
	)
	_, err := newHost(c, nil).Get("attr")
	assert.ErrorIs(t, err, apis.ErrComputeFailed)
	assert.ErrorContains(t, err, "no value today")
}

func TestInheritedProperty(t *testing.T) {
	defaulted := class.MustNew("DefaultedProperties",
		class.Attr("default_attr", property.New(property.WithLiteral("default_attr"))),
	)
	inheritedDefaulted := class.MustNew("InheritedDefaultedProperties",
		class.Extends(defaulted),
		class.Attr("default_attr", property.New(property.WithLiteral("child_default"))),
	)
	assert.Equal(t, "child_default", mustGet(t, newHost(inheritedDefaulted, nil), "default_attr"))
	assert.Equal(t, "kwarg_val",
		mustGet(t, newHost(inheritedDefaulted, map[string]any{"default_attr": "kwarg_val"}), "default_attr"))
	assert.Equal(t, "default_attr", mustGet(t, newHost(defaulted, nil), "default_attr"))

	dependent := dependentClass()
	parentDependent, ok := dependent.Property("dependent_attr")
	require.True(t, ok)
	inheritedDependent := class.MustNew("InheritedDependentProperties",
		class.Extends(dependent),
		class.Attr("child_dependent_attr", property.New(property.WithDefault(property.DependsOn(parentDependent)))),
	)
	assert.Equal(t, "base_attr",
		mustGet(t, newHost(inheritedDependent, map[string]any{"base_attr": "base_attr"}), "child_dependent_attr"))

	inheritedCallback := class.MustNew("InheritedCallbackProperties",
		class.Extends(callbackClass()),
		class.Callback("get_callback_attr", func(h apis.Host) (any, error) {
			base, err := propx.Get[string](h, "base_attr")
			if err != nil {
				return nil, err
			}
			if base == "" {
				return "new_child_base_default", nil
			}
			return base + "_child_callback", nil
		}),
	)
	assert.Equal(t, "new_child_base_default", mustGet(t, newHost(inheritedCallback, nil), "get_callback_attr"))
	assert.Equal(t, "base_attr_child_callback",
		mustGet(t, newHost(inheritedCallback, map[string]any{"base_attr": "base_attr"}), "get_callback_attr"))
}

func TestSuperkeyProperty(t *testing.T) {
	superkey := class.MustNew("SuperkeyProperties",
		class.Attr("subkey_attr", property.New(property.WithSuperkeys(property.Path("subkey")))),
		class.Attr("multi_subkey_attr", property.New(property.WithSuperkeys(property.Path("subkey_1", "subkey_2")))),
	)

	assert.Equal(t, "sub_val", mustGet(t,
		newHost(superkey, map[string]any{"subkey": map[string]any{"subkey_attr": "sub_val"}}),
		"subkey_attr"))
	assert.Equal(t, "multi_sub_val", mustGet(t,
		newHost(superkey, map[string]any{"subkey_1": map[string]any{"subkey_2": map[string]any{"multi_subkey_attr": "multi_sub_val"}}}),
		"multi_subkey_attr"))

	// Once the superkey is found the top-level input is not consulted.
	assert.Nil(t, mustGet(t,
		newHost(superkey, map[string]any{"subkey": map[string]any{"other": 1}, "subkey_attr": "top"}),
		"subkey_attr"))
	// A missing superkey leaves the lookup at the mapping reached so far.
	assert.Equal(t, "top", mustGet(t, newHost(superkey, map[string]any{"subkey_attr": "top"}), "subkey_attr"))
}

func TestNoNameBinding(t *testing.T) {
	h := instance.New(&class.Class{}, map[string]any{"base_attr": "x"})
	_, err := h.Get("base_attr")
	assert.ErrorIs(t, err, apis.ErrMissingNameBinding)

	// A descriptor that was never bound fails the same way on a bound class.
	c := class.MustNew("Bound", class.Attr("base_attr", property.New()))
	_, err = property.New().Get(newHost(c, nil))
	assert.ErrorIs(t, err, apis.ErrMissingNameBinding)
}

func TestValidateProperty(t *testing.T) {
	positive := validate.Func("positive", func(v any) bool {
		n, ok := v.(int)
		return ok && n > 0
	})
	validated := class.MustNew("ValidateProperties",
		class.Attr("validate_regex_attr", property.New(property.WithValidators(validate.MustPattern(`[1-9]\d*`)))),
		class.Attr("validate_lambda_attr", property.New(property.WithValidators(positive))),
		class.Attr("validate_func_attr", property.New(property.WithValidators(validate.Func("is string", func(v any) bool {
			_, ok := v.(string)
			return ok
		})))),
	)

	assert.Equal(t, 1, mustGet(t, newHost(validated, map[string]any{"validate_regex_attr": 1}), "validate_regex_attr"))
	_, err := newHost(validated, map[string]any{"validate_regex_attr": 0}).Get("validate_regex_attr")
	assert.ErrorIs(t, err, apis.ErrValidationFailed)

	assert.Equal(t, 1, mustGet(t, newHost(validated, map[string]any{"validate_lambda_attr": 1}), "validate_lambda_attr"))
	_, err = newHost(validated, map[string]any{"validate_lambda_attr": 0}).Get("validate_lambda_attr")
	require.ErrorIs(t, err, apis.ErrValidationFailed)
	var pe *apis.PropertyError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "positive", pe.Validator)
	assert.Equal(t, 0, pe.Value)

	assert.Equal(t, "test", mustGet(t, newHost(validated, map[string]any{"validate_func_attr": "test"}), "validate_func_attr"))
	_, err = newHost(validated, map[string]any{"validate_func_attr": 0}).Get("validate_func_attr")
	assert.ErrorIs(t, err, apis.ErrValidationFailed)

	// Writes are validated too.
	h := newHost(validated, nil)
	assert.ErrorIs(t, h.Set("validate_lambda_attr", -1), apis.ErrValidationFailed)
	assert.NoError(t, h.Set("validate_lambda_attr", 3))
}

func TestSingletonIsIdempotent(t *testing.T) {
	calls := 0
	c := class.MustNew("Counter",
		class.Attr("n", property.New(property.WithDefault(property.Lazy(func() any {
			calls++
			return calls
		})))),
	)
	h := newHost(c, nil)
	first := mustGet(t, h, "n")
	assert.Equal(t, first, mustGet(t, h, "n"))
	assert.Equal(t, first, mustGet(t, h, "n"))
}

func TestGetTyped(t *testing.T) {
	c := class.MustNew("Typed",
		class.Attr("name", property.New(property.WithLiteral("ada"))),
		class.Attr("none", property.New()),
	)
	h := newHost(c, nil)

	name, err := propx.Get[string](h, "name")
	require.NoError(t, err)
	assert.Equal(t, "ada", name)

	n, err := propx.Get[int](h, "none")
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = propx.Get[int](h, "name")
	assert.ErrorIs(t, err, apis.ErrTypeMismatch)
	assert.True(t, strings.Contains(err.Error(), "requested int"), err.Error())

	_, err = propx.Get[string](h, "missing")
	assert.ErrorIs(t, err, apis.ErrUnknownProperty)

	_, err = propx.Get[string](nil, "name")
	assert.ErrorIs(t, err, propx.ErrNilHost)
}
