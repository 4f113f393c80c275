// Package tabula is the composition root for the tabula toolkit.
//
// It connects the domain packages (change tracking, localization,
// persistence orchestration) with the infrastructure adapters (disk
// store, external-change watcher).
//
// Philosophy:
//
// Tabula treats a directory of game-config tables and localization files
// as an editable workspace. Edits accumulate in memory against a known
// baseline; nothing touches disk until an explicit save, and a batch
// save writes each dirty table exactly once.
//
// Features:
//
//   - **Change tracking**: generic baseline/current trackers with
//     precise added/modified/removed classification.
//   - **Localization**: per-language CSV tables or a single horizontal
//     sheet, key metadata with fixed (undeletable) keys, optional
//     machine translation, go-i18n export.
//   - **Batch persistence**: best-effort multi-type commit with a
//     per-type report; a failing type never blocks the others.
//   - **Atomic writes**: temp-file plus rename, so a crash never leaves
//     a half-written table.
//   - **External-change watching**: fsnotify-based, debounced, so an
//     editor can prompt for reload when another tool touches the files.
//
// Usage:
//
//	session, err := tabula.Open("./data",
//		tabula.WithDefaultLanguage(tabula.English),
//		tabula.WithLogger(logger),
//	)
//
//	loc := session.Localization
//	loc.SetText("Greeting", "Hello", tabula.English)
//	report := session.Manager.SaveAll(ctx, false)
package tabula
