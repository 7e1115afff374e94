// Package model defines the résumé aggregate record consumed by the field
// store, the template engine and the persistence adapter. The aggregate is a
// plain value: it is rebuilt from the live form on every read and only ever
// snapshotted to storage, never treated as the source of truth.
//
// Section kinds describe the seven repeatable entry types. Each kind carries
// the prefixes used to address its fields (`{prefix}_{field}_{index}`) and its
// fieldsets (`{kind[:3]}_fieldset_{index}`), so every package agrees on one
// naming scheme.
package model
