// Package gedcom parses GEDCOM genealogy files into an in-memory graph of
// typed records with resolved cross-references.
//
// The engine is deliberately permissive: real-world producers disagree with
// the grammar in dozens of small ways, and the tokenizer's leniency flags,
// the tag compatibility remap and the assembler's custom-node fallback exist
// to absorb them. Only tokenizer-level syntax errors stop a parse; every
// structural or reference anomaly is logged on the Database and tolerated.
//
// Parsing is a single sequential pipeline: byte-order-mark detection picks a
// decoder (restarting once if the header later declares a different
// character set), each decoded line becomes a Token, a stack machine
// assembles tokens into records, and a final resolution pass synthesizes
// reciprocal family links, computes pedigree classifications, audits
// references and back-links citations. Sessions share no state; the
// returned Database belongs to the caller alone.
package gedcom
