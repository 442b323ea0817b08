// Package widget renders field lists on the server.
//
// The markup matches what package repeatable instruments:
//
//	<ul id="tags" class="field-list ...">
//	  <li id="row-tags-0" class="field-list-row ..."><input name="tags[0]"> <button class="field-list-remove">
//	  <li id="control-tags"><button class="field-list-add">
//	</ul>
//
// Rendering goes through a pongo2 template embedded in the package. An
// optional go-theme selector contributes class tokens and a data-bs-theme
// variant, and the result is passed through the sanitize policy.
package widget
