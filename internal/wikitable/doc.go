// Package wikitable extracts rows from MediaWiki "wikitable" HTML tables.
//
// Tables are located by class with goquery. Header and body cells are expanded
// through rowspan and colspan into a rectangular grid, so grouped headers such as
// "Date" spanning "Date (A.D.)" and "Date (B.S.)" become two-tier column keys.
// Rows of every matched table are returned in document order.
package wikitable
