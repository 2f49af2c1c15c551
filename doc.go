/*
Package oops propagates errors through a call tree without panics and without
per-call error returns.

A root creates one Context and threads views of it (Oops values) down the
tree. Each function wraps its body in a guard that runs only while no
incident is pending. The first function to record an incident makes every
later guard of the tree skip its body, until the root clears the Context.

# Tables

Each domain describes its error ids with a Table, a total function from ID to
Descriptor. Id 0 is the sentinel "no error" entry and every unknown id
resolves to it.

	const (
		ErrOpen oops.ID = iota + 1
		ErrRead
	)

	var files = oops.NewTable(
		oops.Describe(oops.Ignore, "files: undefined error", ErrOpen),
		oops.Describe(oops.Recoverable, "files: open failed", ErrRead),
		oops.Describe(oops.Unrecoverable, "files: read failed", 0),
	)

# Guards

A guard hands its body the view one call deeper and, when the body leaves
with a pending incident that has no location yet, stamps its own file, line,
tag and depth into it. The innermost guard therefore owns the location.

	func load(o oops.Oops) {
		o.Guard(func(o oops.Oops) {
			open(o.Tag(1))
			read(o.Tag(2)) // skipped when open failed
		})
	}

	func open(o oops.Oops) {
		o.Guard(func(o oops.Oops) {
			if !exists() {
				o.Raise(ErrOpen)
			}
		})
	}

The defer form does the same without a closure:

	b := o.Enter()
	if !b.Active() {
		return
	}
	defer b.Exit()
	o = b.Oops()

# Handling

The root inspects and clears:

	o := oops.Root(files)
	load(o)
	if o.Query() {
		o.Print()
		info := o.Clear()
		compensate(info.Tag)
	}

# Hooks

Every incident runs the Context's Policy synchronously. The default
TextPolicy aborts the process on Unrecoverable incidents and prints a line for
Recoverable ones. Print and the step operations go through the Printer and
Tracer hooks. Hooks are bound once with options:

	o := oops.Root(files,
		oops.UsePolicy(myPolicy),
		oops.Output(os.Stderr),
	)

The hooks sub-packages provide zap, zerolog, Sentry and Prometheus hooks.
*/
package oops
