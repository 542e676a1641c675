// This file is part of gel - https://github.com/hpoggie/gel
//
// Copyright 2026 The gel Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package eval

import "github.com/hpoggie/gel/value"

// macroExpand repeatedly applies macroExpand1 until form is no longer a
// macro call: while the head of a cons is a symbol resolving to a function
// whose macro flag is set, the form is replaced with the result of calling
// that function on the raw, un-evaluated argument list.
func (ev *Evaluator) macroExpand(form value.Value, env value.Env) (value.Value, error) {
	for {
		next, expanded, err := ev.macroExpand1(form, env)
		if err != nil {
			return nil, err
		}
		if !expanded {
			return next, nil
		}
		form = next
	}
}

func (ev *Evaluator) macroExpand1(form value.Value, env value.Env) (value.Value, bool, error) {
	cons, ok := form.(*value.Cons)
	if !ok {
		return form, false, nil
	}
	sym, ok := cons.Car.(value.Symbol)
	if !ok {
		return form, false, nil
	}
	fnVal, ok := env.Lookup(sym)
	if !ok {
		return form, false, nil
	}

	var isMacro bool
	switch f := fnVal.(type) {
	case *value.UserFn:
		isMacro = f.Macro
	case *value.BuiltinFn:
		isMacro = f.Macro
	}
	if !isMacro {
		return form, false, nil
	}

	rawArgs, ok := value.Slice(cons.Cdr)
	if !ok {
		return nil, false, ev.evalErrorf("macro call with improper argument list: %s", form.Repr())
	}
	expanded, err := ev.Apply(fnVal, rawArgs)
	if err != nil {
		return nil, false, err
	}
	return expanded, true, nil
}
