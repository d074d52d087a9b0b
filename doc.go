/*
Package hiertab implements tables whose rows and columns are identified by
multi-level keys, and stacking of such tables vertically (ConcatRows) and
horizontally (ConcatCols).

We implement:

1. Keys, tuples of (group, label) pairs, one pair per level.

2. Indexes, sorted sequences of keys forming one axis of a table.

3. Columns, sorted mappings from row keys to opaque values.

4. Tables, columns over a shared row index plus a column index.

5. Lookup of a row or column by full key, by labels or by groups.

# Technical Details

**Groups and labels.**
Groups are integers and define the order of an index: keys are sorted by
their group tuples, compared lexicographically, and no two keys of an index
share a group tuple. Labels are what a person calls a row or a column; they
decide whether two keys from different tables denote the same thing.

**Merging an index.**
Index.Insert takes a key from another table. Its siblings are the keys with
the same groups at all levels but the last. If a sibling carries the same
last-level label, the key is that sibling. Otherwise it becomes a new sibling
numbered one past the largest sibling group, placed right after the
siblings. A key with no siblings keeps its groups.

**Stacking.**
ConcatRows shifts the second table's outermost row groups above the first
table's, concatenates row indexes, and merges columns through Index.Insert.
ConcatCols does the same with the axes swapped, except that rows are merged
one key at a time, so rows with matching labels unify. Cells neither table
had get a fill value (Missing by default). Multi-table forms fold from the
left, and the result depends on the order.

**Immutability.**
Tables never change after construction. Merges clone the columns and
indexes they build upon; SetCell always fails with ErrUnsupported.

## Binary encoding

Columns store their cells sorted by an encoded row key:
groups as big-endian 8-byte words with the sign bit flipped, then labels in
tuple format (raw label bytes, byte-reversed uvarint lengths of all labels
but the last, byte-reversed uvarint level count). Byte order of encoded keys
matches group order, so a column iterates in row index order.
*/
package hiertab
