// Package cli provides the interactive back-office command-line client.
//
// It wires configuration, local storage, the HTTP gateway, the session store
// and the services, then serves a REPL whose view commands pass through the
// route guard. At startup the previous session is restored from the stored
// token before the first prompt.
//
// Views:
//   - login / register / logout / passwd
//   - dashboard, profile, profile-edit
//   - agreements (list, add, edit, delete)
//   - clients (list, add, delete)
//   - transactions
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
