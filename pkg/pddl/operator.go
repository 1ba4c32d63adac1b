package pddl

// DefaultParameterValue marks a parameter that is not instantiated yet.
const DefaultParameterValue = -1

// Action is the integer-encoded representation of a planning operator: a
// name, typed parameters, a precondition tree and an effect tree. The
// parameter at index k is referenced inside expressions as the encoded
// variable -(k+1). Durative actions additionally carry a duration
// constraint tree.
type Action struct {
	Name           string
	Parameters     []int // parameter index -> type id
	Instantiations []int // parameter index -> constant id, or DefaultParameterValue
	Preconditions  *Expression
	Effects        *Expression
	Duration       *Expression // nil for non-durative actions
}

// NewAction returns an action with the given name and arity, all
// parameters uninstantiated and TRUE precondition and effect trees.
func NewAction(name string, arity int) *Action {
	a := &Action{
		Name:           name,
		Parameters:     make([]int, arity),
		Instantiations: make([]int, arity),
		Preconditions:  NewExpression(TRUE),
		Effects:        NewExpression(TRUE),
	}
	for i := range a.Instantiations {
		a.Instantiations[i] = DefaultParameterValue
	}
	return a
}

// CopyAction returns a deep copy of the action: parameter vectors and
// expression trees are cloned, and the duration is copied iff the source
// has one.
func CopyAction(other *Action) *Action {
	a := &Action{
		Name:           other.Name,
		Parameters:     append([]int(nil), other.Parameters...),
		Instantiations: append([]int(nil), other.Instantiations...),
		Preconditions:  other.Preconditions.Copy(),
		Effects:        other.Effects.Copy(),
	}
	if other.Duration != nil {
		a.Duration = other.Duration.Copy()
	}
	return a
}

// Arity returns the number of parameters of the action.
func (a *Action) Arity() int { return len(a.Parameters) }

// TypeOfParameter returns the type id of parameter i.
func (a *Action) TypeOfParameter(i int) int { return a.Parameters[i] }

// SetTypeOfParameter refines the type of parameter i.
func (a *Action) SetTypeOfParameter(i, typ int) { a.Parameters[i] = typ }

// ValueOfParameter returns the constant bound to parameter i, or
// DefaultParameterValue when the parameter is free.
func (a *Action) ValueOfParameter(i int) int { return a.Instantiations[i] }

// InstantiateParameter binds parameter i to the given constant.
func (a *Action) InstantiateParameter(i, constant int) { a.Instantiations[i] = constant }

// IsGround reports whether every parameter is instantiated.
func (a *Action) IsGround() bool {
	for _, v := range a.Instantiations {
		if v == DefaultParameterValue {
			return false
		}
	}
	return true
}

// IsDurative reports whether the action carries a duration constraint.
func (a *Action) IsDurative() bool { return a.Duration != nil }

// TaskNetwork is the decomposition target of a method: an ordered list of
// subtask expressions plus the ordering constraints between them.
type TaskNetwork struct {
	Tasks    []*Expression
	Ordering *OrderingConstraintNetwork
}

// NewTaskNetwork returns a network over the given subtasks with no
// ordering constraints.
func NewTaskNetwork(tasks ...*Expression) *TaskNetwork {
	return &TaskNetwork{
		Tasks:    tasks,
		Ordering: NewOrderingConstraintNetwork(len(tasks)),
	}
}

// CopyTaskNetwork returns a deep copy of the network.
func CopyTaskNetwork(other *TaskNetwork) *TaskNetwork {
	tasks := make([]*Expression, len(other.Tasks))
	for i, t := range other.Tasks {
		tasks[i] = t.Copy()
	}
	return &TaskNetwork{Tasks: tasks, Ordering: other.Ordering.Copy()}
}

// IsTotallyOrdered reports whether the ordering constraints impose a
// single total order on the subtasks.
func (tn *TaskNetwork) IsTotallyOrdered() bool {
	return tn.Ordering.IsTotallyOrdered()
}

// Method is the integer-encoded representation of an HTN decomposition
// method: it decomposes a compound task into the subtasks of its task
// network, guarded by a precondition tree. Methods have no effects.
type Method struct {
	Name           string
	Parameters     []int
	Instantiations []int
	Task           int // index of the compound task the method decomposes
	Preconditions  *Expression
	TaskNetwork    *TaskNetwork
}

// NewMethod returns a method with the given name and arity, no task and an
// empty task network.
func NewMethod(name string, arity int) *Method {
	m := &Method{
		Name:           name,
		Parameters:     make([]int, arity),
		Instantiations: make([]int, arity),
		Task:           NoID,
		Preconditions:  NewExpression(TRUE),
		TaskNetwork:    NewTaskNetwork(),
	}
	for i := range m.Instantiations {
		m.Instantiations[i] = DefaultParameterValue
	}
	return m
}

// CopyMethod returns a deep copy of the method.
func CopyMethod(other *Method) *Method {
	return &Method{
		Name:           other.Name,
		Parameters:     append([]int(nil), other.Parameters...),
		Instantiations: append([]int(nil), other.Instantiations...),
		Task:           other.Task,
		Preconditions:  other.Preconditions.Copy(),
		TaskNetwork:    CopyTaskNetwork(other.TaskNetwork),
	}
}

// Arity returns the number of parameters of the method.
func (m *Method) Arity() int { return len(m.Parameters) }

// TypeOfParameter returns the type id of parameter i.
func (m *Method) TypeOfParameter(i int) int { return m.Parameters[i] }

// SetTypeOfParameter refines the type of parameter i.
func (m *Method) SetTypeOfParameter(i, typ int) { m.Parameters[i] = typ }

// ValueOfParameter returns the constant bound to parameter i, or
// DefaultParameterValue when the parameter is free.
func (m *Method) ValueOfParameter(i int) int { return m.Instantiations[i] }

// InstantiateParameter binds parameter i to the given constant.
func (m *Method) InstantiateParameter(i, constant int) { m.Instantiations[i] = constant }

// DurativeMethod is a method with a duration and duration constraints.
type DurativeMethod struct {
	Method
	Duration            *Expression
	DurationConstraints []*Expression
}

// CopyDurativeMethod returns a deep copy of the method. The duration is
// copied iff the source has one; duration constraints are cloned
// individually.
func CopyDurativeMethod(other *DurativeMethod) *DurativeMethod {
	m := &DurativeMethod{Method: *CopyMethod(&other.Method)}
	if other.Duration != nil {
		m.Duration = other.Duration.Copy()
	}
	if other.DurationConstraints != nil {
		m.DurationConstraints = make([]*Expression, len(other.DurationConstraints))
		for i, c := range other.DurationConstraints {
			m.DurationConstraints[i] = c.Copy()
		}
	}
	return m
}
