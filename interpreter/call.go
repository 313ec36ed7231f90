package interpreter

import (
	"fmt"

	"zoof/ast"
	"zoof/object"
	"zoof/source"
)

// spanNode is the minimal span-reporting surface evalCall/evalGet/evalSet
// need in order to raise a diagnostic at the right source location.
type spanNode interface {
	Span() (source.Pos, source.Pos)
}

// newFunction builds a Function value closing over the interpreter's
// current environment, the way zoofc1's ZoofFunction captures
// self.env/self.ehandler.source at the point the declaration is
// evaluated, not at call time.
func (i *Interpreter) newFunction(name string, params []string, body []ast.Stmt, exprBody ast.Expr, freeVars []string) *object.Function {
	return &object.Function{
		Name:     name,
		Params:   params,
		Body:     body,
		ExprBody: exprBody,
		FreeVars: append([]string(nil), freeVars...),
		Closure:  i.env,
		Source:   i.handler.Source,
	}
}

// trackOpenFunction registers fn against the innermost active call frame
// (mirrors zoofc1's self.maybeClosures[-1].append(function)) so that
// when that call returns, fn's free variables are checked against the
// call's locals. Top-level declarations have no open frame and are
// never tracked, matching zoofc1's empty maybeClosures at module scope.
func (i *Interpreter) trackOpenFunction(fn *object.Function) {
	if len(i.openFunctions) == 0 {
		return
	}
	top := len(i.openFunctions) - 1
	i.openFunctions[top] = append(i.openFunctions[top], fn)
}

func (i *Interpreter) evalCall(n *ast.CallExpr) (object.Value, error) {
	callee, err := i.evalExpr(n.Callee)
	if err != nil {
		return nil, err
	}
	args := make([]object.Value, 0, len(n.Args))
	for _, a := range n.Args {
		v, err := i.evalExpr(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	if strct, ok := callee.(*object.Struct); ok {
		return i.instantiate(n, strct, args)
	}
	return i.callValue(n, callee, args)
}

// instantiate constructs an Instance by zipping positional arguments
// with the struct's declared field names, per spec.md §4.4's Call rule
// for "the callee is a Struct being instantiated".
func (i *Interpreter) instantiate(n *ast.CallExpr, strct *object.Struct, args []object.Value) (object.Value, error) {
	if len(args) != len(strct.Fields) {
		return nil, i.runtimeError("E8318",
			fmt.Sprintf("%s expects %d field values, got %d", strct.Name, len(strct.Fields), len(args)), n, "")
	}
	fields := make(map[string]object.Value, len(strct.Fields))
	for idx, name := range strct.Fields {
		fields[name] = args[idx]
	}
	return &object.Instance{Struct: strct, Fields: fields}, nil
}

// callValue dispatches a Call to whichever Callable variant callee is.
func (i *Interpreter) callValue(n spanNode, callee object.Value, args []object.Value) (object.Value, error) {
	switch fn := callee.(type) {
	case *object.NativeFunction:
		v, err := fn.Fn(args)
		if err != nil {
			return nil, i.runtimeError("E8319", err.Error(), n, "")
		}
		return v, nil

	case *object.Function:
		if len(args) != fn.Arity() {
			return nil, i.runtimeError("E8312",
				fmt.Sprintf("expected %d arguments, but got %d", fn.Arity(), len(args)), n, "")
		}
		return i.callFunction(n, fn, args, nil)

	case *object.BoundMethod:
		if len(args) != fn.Arity() {
			return nil, i.runtimeError("E8312",
				fmt.Sprintf("expected %d arguments, but got %d", fn.Arity(), len(args)), n, "")
		}
		extra := map[string]object.Value{}
		switch recv := fn.This.(type) {
		case *object.Instance:
			extra["this"] = recv
			extra["This"] = recv.Struct
		case *object.Struct:
			extra["this"] = object.NilValue
			extra["This"] = recv
		}
		return i.callFunction(n, fn.Fn, args, extra)

	default:
		return nil, i.runtimeError("E8317", "not a callable object", n, "")
	}
}

// callFunction pushes a new call-local environment parented to fn's
// closure, binds extra (this/This) then positional params, executes the
// body, and — before control returns to the caller — runs the
// closure-capture check for every nested function declared during this
// call (zoofc1 ZoofFunction.call / popEnvironment).
func (i *Interpreter) callFunction(n spanNode, fn *object.Function, args []object.Value, extra map[string]object.Value) (object.Value, error) {
	if len(fn.Captured) > 0 {
		return nil, i.runtimeError("E8313", "closures are not supported at the moment", n, "")
	}

	callEnv := object.NewEnclosed(fn.Closure)
	for name, v := range extra {
		callEnv.Set(name, v)
	}
	for idx, p := range fn.Params {
		callEnv.Set(p, args[idx])
	}

	prevSource := i.handler.SwapSource(fn.Source)
	prevEnv := i.env
	i.env = callEnv
	i.openFunctions = append(i.openFunctions, nil)

	var result object.Value = object.NilValue
	var callErr error
	switch {
	case fn.Body != nil:
		if err := i.execStmts(fn.Body); err != nil {
			if rs, ok := err.(returnSignal); ok {
				result = rs.Value
			} else {
				callErr = err
			}
		}
	case fn.ExprBody != nil:
		v, err := i.evalExpr(fn.ExprBody)
		if err != nil {
			callErr = err
		} else {
			result = v
		}
	}

	frame := i.openFunctions[len(i.openFunctions)-1]
	i.openFunctions = i.openFunctions[:len(i.openFunctions)-1]
	for _, nested := range frame {
		nested.PopEnvironmentCheck(callEnv)
	}

	i.env = prevEnv
	i.handler.SwapSource(prevSource)
	return result, callErr
}

// currentThis looks up the nearest enclosing `This` binding by walking
// the environment chain directly — unlike ordinary variable reads,
// privacy enforcement has no resolved VariableExpr/Depth to consult,
// since the check is implicit in Get/Set rather than a source reference.
func (i *Interpreter) currentThis() (*object.Struct, bool) {
	v, err := i.lookupByName("This")
	if err != nil {
		return nil, false
	}
	s, ok := v.(*object.Struct)
	return s, ok
}

func (i *Interpreter) evalGet(n *ast.GetExpr) (object.Value, error) {
	obj, err := i.evalExpr(n.Object)
	if err != nil {
		return nil, err
	}

	switch o := obj.(type) {
	case *object.Struct:
		if n.Private {
			return nil, i.runtimeError("E8320", "a struct archetype has no data fields to access with '..'", n, "")
		}
		fn, ok := o.Methods[n.Name]
		if !ok {
			return nil, i.runtimeError("E8321", fmt.Sprintf("%s has no static function '%s'", o.Name, n.Name), n, "")
		}
		return &object.BoundMethod{Fn: fn, This: o}, nil

	case *object.Instance:
		if n.Private {
			this, ok := i.currentThis()
			if !ok || this != o.Struct {
				return nil, i.runtimeError("E8315", fmt.Sprintf("'%s' is a private field of %s", n.Name, o.Struct.Name), n,
					"Direct field access with '..' is only allowed from inside that struct's own methods.")
			}
			v, ok := o.Fields[n.Name]
			if !ok {
				return nil, i.runtimeError("E8322", fmt.Sprintf("%s has no field '%s'", o.Struct.Name, n.Name), n, "")
			}
			return v, nil
		}
		if getter, ok := o.Struct.Getters[n.Name]; ok {
			return i.callValue(n, &object.BoundMethod{Fn: getter, This: o}, nil)
		}
		if m, ok := o.Struct.Methods[n.Name]; ok {
			return &object.BoundMethod{Fn: m, This: o}, nil
		}
		return nil, i.runtimeError("E8323", fmt.Sprintf("%s has no property or method '%s'", o.Struct.Name, n.Name), n, "")

	default:
		return nil, i.runtimeError("E8324", fmt.Sprintf("cannot access '%s' on a %s", n.Name, obj.Kind()), n, "")
	}
}

func (i *Interpreter) evalSet(n *ast.SetExpr) (object.Value, error) {
	obj, err := i.evalExpr(n.Object)
	if err != nil {
		return nil, err
	}
	val, err := i.evalExpr(n.Value)
	if err != nil {
		return nil, err
	}

	inst, ok := obj.(*object.Instance)
	if !ok {
		return nil, i.runtimeError("E8324", fmt.Sprintf("cannot set '%s' on a %s", n.Name, obj.Kind()), n, "")
	}

	if n.Private {
		this, ok := i.currentThis()
		if !ok || this != inst.Struct {
			return nil, i.runtimeError("E8315", fmt.Sprintf("'%s' is a private field of %s", n.Name, inst.Struct.Name), n,
				"Direct field access with '..' is only allowed from inside that struct's own methods.")
		}
		inst.Fields[n.Name] = val
		return val, nil
	}

	if setter, ok := inst.Struct.Setters[n.Name]; ok {
		return i.callValue(n, &object.BoundMethod{Fn: setter, This: inst}, []object.Value{val})
	}
	return nil, i.runtimeError("E8325", fmt.Sprintf("%s has no setter for '%s'", inst.Struct.Name, n.Name), n, "")
}
