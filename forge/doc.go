// Package forge provides file operations that pull their bytes from a
// payload, with validation, transactions and drift checks.
//
// # Steps
//
// A payload is any [Anvil]: a value that writes file contents into an
// io.Writer. Two steps consume payloads:
//
//   - [Append] adds the payload to the end of an existing file and fails if
//     the file does not exist
//   - [Generate] creates a new file and fails if the path already exists
//
// Steps do nothing until forged:
//
//	err := forge.NewGenerate(payload).Forge(ctx, "models/user.go")
//
// # Operations
//
// [At] binds a step to a path. [Execute] validates every operation, then runs
// them in a [Transaction]:
//
//	ops := []forge.Operation{
//	    forge.At("models/user.go", forge.NewGenerate(model)),
//	    forge.At("routes.go", forge.NewAppend(route)),
//	}
//	if err := forge.Execute(ctx, ops, forge.ExecuteOptions{}); err != nil {
//	    // Nothing was left half-written
//	    return err
//	}
//
// Validation sees the run as a whole: a file generated by one operation
// exists for the operations after it, so a run may generate a file and then
// append to it.
//
// On failure, generated files are removed together with the directories
// created for them, and appended files are truncated back to their size
// before the run.
//
// # Verification
//
// [Verify] checks that files on disk already match what a set of operations
// would produce, reporting every file that drifted.
package forge
