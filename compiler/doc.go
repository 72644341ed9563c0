/*

Backend pipeline for one function

Function (ir) ->
	verify ->
checked Function ->
	encode (isa) ->
Function + encodings, or legalize directives back to the legalizer ->
	relax branches (binemit) ->
Function + code layout (EBB offsets) ->
	emit ->
Machine Code

The Function owns every entity it mentions: stack slots, global variables,
heaps, jump tables, the data flow graph and the layout. Passes communicate
by mutating its side tables.

*/
package compiler
