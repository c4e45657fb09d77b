// Package app runs one cleaning job from a loaded configuration.
//
// # Run Sequence
//
//  1. Load the input table; on failure print the error and stop
//  2. Print a preview, a column summary and the duplicate count
//  3. Clean the table (normalize, parse currency, impute, deduplicate)
//  4. Print stage progress and the remaining missing counts
//  5. Save the cleaned table; on failure print the error
//  6. Print the saved location, a preview and a summary of the result
//
// # Usage
//
//	application, err := app.NewApplication(ctx, cfg, os.Stdout)
//	if err != nil {
//	    return err
//	}
//	defer application.Stop(ctx)
//	if err := application.Run(ctx); err != nil {
//	    return err
//	}
//
// # Error Handling
//
// Run only returns an error when the input cannot be read. The app does not
// call os.Exit() directly, allowing the main function to control the exit
// process.
package app
