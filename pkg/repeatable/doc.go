// Package repeatable implements repeatable form-field lists: a container holds
// rows of form controls whose names encode the row position, and add/remove
// affordances clone or drop rows while keeping ids and names indexed.
//
// Markup contract (class names configurable through Markers):
//
//	<ul id="tags" class="field-list">
//	  <li id="row-tags-0" class="field-list-row">
//	    <input name="tags[0]" value="go">
//	    <button type="button" class="field-list-remove">Remove</button>
//	  </li>
//	  <li><button type="button" class="field-list-add">Add</button></li>
//	</ul>
//
// Row ids are <prefix>-<position>. Adding a row clones the first row, clears
// input values, rewrites the first bracketed index of input names and the last
// hyphen segment of select names and ids. Removing a row renumbers the ids of
// the remaining rows; control names are left alone unless WithControlReindex
// is set.
package repeatable
