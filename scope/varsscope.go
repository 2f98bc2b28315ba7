/*
 * golox
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package scope

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"sync"

	"devt.de/krotik/lox/parser"
)

/*
varsScope models one level of Lox's lexical scope chain: a block, a
function call, or the global scope.
*/
type varsScope struct {
	name     string                 // Name of the scope
	parent   parser.Scope           // Parent scope
	children []*varsScope           // Children of this scope (for debug dumps)
	storage  map[string]interface{} // Storage for variables
	lock     *sync.RWMutex          // Lock for this scope
}

/*
NewScope creates a new, parent-less variable scope.
*/
func NewScope(name string) parser.Scope {
	return NewScopeWithParent(name, nil)
}

/*
NewScopeWithParent creates a new variable scope with a parent. This can be
used to create scope structures without children links.
*/
func NewScopeWithParent(name string, parent parser.Scope) parser.Scope {
	res := &varsScope{name, nil, nil, make(map[string]interface{}), &sync.RWMutex{}}
	SetParentOfScope(res, parent)
	return res
}

/*
SetParentOfScope sets the parent of a given scope. This assumes that the
given scope is a varsScope. Reparenting also adopts the parent's lock, so a
function's captured closure scope and the call scope that reparents onto it
share the same mutex - needed for a closure's mutations to be visible to
every other closure sharing the same captured scope.
*/
func SetParentOfScope(scope parser.Scope, parent parser.Scope) {
	if pvs, ok := parent.(*varsScope); ok {
		if vs, ok := scope.(*varsScope); ok {

			vs.lock.Lock()
			defer vs.lock.Unlock()
			pvs.lock.Lock()
			defer pvs.lock.Unlock()

			vs.parent = parent
			vs.lock = pvs.lock
		}
	}
}

/*
NewChild creates a new child scope for variables. The new child scope is
tracked by the parent scope - this means it should not be used for global
scopes with many children.
*/
func (s *varsScope) NewChild(name string) parser.Scope {
	s.lock.Lock()
	defer s.lock.Unlock()

	child := &varsScope{name, s, nil, make(map[string]interface{}), s.lock}
	s.children = append(s.children, child)

	return child
}

/*
Name returns the name of this scope.
*/
func (s *varsScope) Name() string {
	return s.name
}

/*
Parent returns the parent scope or nil.
*/
func (s *varsScope) Parent() parser.Scope {
	return s.parent
}

/*
Declare introduces a new binding in this scope, shadowing any binding of
the same name in a parent scope. Used for `var` declarations, function
parameter binding and `this`/`super` injection into a method's call scope.
*/
func (s *varsScope) Declare(varName string, varValue interface{}) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.storage[varName] = varValue
}

/*
SetValue assigns to an existing binding for a variable, walking up the
scope chain to find it. It declares the variable in this scope if no
existing binding is found. The interpreter's assignments (setVariable in
interpreter/rt_identifier.go) check for a binding with GetValue first, so
they never reach this fallback.
*/
func (s *varsScope) SetValue(varName string, varValue interface{}) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if vs := s.scopeForVariable(varName); vs != nil {
		vs.storage[varName] = varValue
		return nil
	}

	s.storage[varName] = varValue
	return nil
}

/*
GetValue gets the current value of a variable, walking up the scope chain.
*/
func (s *varsScope) GetValue(varName string) (interface{}, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if vs := s.scopeForVariable(varName); vs != nil {
		return vs.storage[varName], true
	}

	return nil, false
}

/*
GetValueAt gets the value of a variable which is known (by the resolver) to
be declared exactly `distance` scopes above this one.
*/
func (s *varsScope) GetValueAt(distance int, varName string) (interface{}, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	vs := s.ancestor(distance)
	if vs == nil {
		return nil, false
	}

	v, ok := vs.storage[varName]
	return v, ok
}

/*
SetValueAt assigns a variable which is known to be declared exactly
`distance` scopes above this one.
*/
func (s *varsScope) SetValueAt(distance int, varName string, varValue interface{}) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	vs := s.ancestor(distance)
	if vs == nil {
		return fmt.Errorf("No scope at distance %v from %v", distance, s.name)
	}

	vs.storage[varName] = varValue
	return nil
}

/*
ancestor walks `distance` parent links up from this scope.
*/
func (s *varsScope) ancestor(distance int) *varsScope {
	var cur parser.Scope = s

	for i := 0; i < distance; i++ {
		if cur == nil {
			return nil
		}
		cur = cur.Parent()
	}

	vs, _ := cur.(*varsScope)
	return vs
}

/*
scopeForVariable returns the scope (this or a parent scope) which holds a
given variable.
*/
func (s *varsScope) scopeForVariable(varName string) *varsScope {
	if _, ok := s.storage[varName]; ok {
		return s
	}

	if s.parent != nil {
		return s.parent.(*varsScope).scopeForVariable(varName)
	}

	return nil
}

/*
String returns a string representation of this varsScope and all its
parents.
*/
func (s *varsScope) String() string {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.scopeStringParents(s.scopeStringChildren())
}

/*
scopeStringChildren returns a string representation of all children
scopes.
*/
func (s *varsScope) scopeStringChildren() string {
	var buf bytes.Buffer

	for i, c := range s.children {
		buf.WriteString(c.scopeString(c.scopeStringChildren()))
		if i < len(s.children)-1 {
			buf.WriteString("\n")
		}
	}

	return buf.String()
}

/*
scopeStringParents returns a string representation of this varsScope with
initial children and all its parents.
*/
func (s *varsScope) scopeStringParents(childrenString string) string {
	ss := s.scopeString(childrenString)

	if s.parent != nil {
		return s.parent.(*varsScope).scopeStringParents(ss)
	}

	return ss
}

/*
scopeString returns a string representation of this varsScope.
*/
func (s *varsScope) scopeString(childrenString string) string {
	buf := bytes.Buffer{}
	var varList []string

	buf.WriteString(fmt.Sprintf("%v {\n", s.name))

	for k := range s.storage {
		varList = append(varList, k)
	}

	sort.Strings(varList)

	for _, v := range varList {
		buf.WriteString(fmt.Sprintf("    %s (%T) : %v\n", v, s.storage[v],
			EvalToString(s.storage[v])))
	}

	if childrenString != "" {
		buf.WriteString("    ")
		buf.WriteString(strings.Replace(childrenString, "\n", "\n    ", -1))
		buf.WriteString("\n")
	}

	buf.WriteString("}")

	return buf.String()
}
