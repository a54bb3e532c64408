// Package pipeline runs one conversion: fetch the page, extract the holiday
// tables, normalize every row, build the calendar and write it out.
//
// Stages run strictly in that order. A failure in any stage ends the run and no
// calendar file is written; rows that cannot become holidays are logged and
// counted but never fail the run.
package pipeline
