// Package thinktag classifies streamed content tokens as reasoning or answer
// text based on inline delimiter tags such as <think>...</think>, tolerating
// delimiters split across token boundaries.
//
// Models that reason inline wrap their chain-of-thought in a reasoning tag
// and, for some model families, wrap the final answer in a second tag. The
// tags arrive as ordinary content tokens, frequently fragmented ("<thi" in
// one token, "nk>" in the next), so the Tracker keeps a residual buffer of
// unclassified trailing text and withholds fragments while a delimiter might
// still be forming.
package thinktag
