package mcpserver

// ReportFormatContract describes the weekly report structure for LLM
// consumers working with the weekly_summary tool.
const ReportFormatContract = `# Raido Weekly Report Format

The weekly PDF report covers one Monday-to-Sunday window and contains only
tasks that were both created inside that window and closed with a comment.

## Window

- The week starts Monday 00:00:00.000 and ends Sunday 23:59:59.999 local time.
- A task belongs to the week its creation date falls into, regardless of
  when it was closed.

## Content

` + "```" + `
Software Engineering Weekly Report
Week: dd/mm/yyyy - dd/mm/yyyy

<Origin Name> (Value Stream | Initiative)
- <task content>
  Closure Note: <close comment>
` + "```" + `

## Rules

1. **Only closed tasks appear.** Open tasks from the same week are excluded.
2. **Groups are origins**, the value stream or initiative that owns the task,
   sorted alphabetically by name. Task order within a group follows the order
   the tasks were added.
3. **Every closed task carries its closure note.** A task cannot be closed
   without one; the close_task tool rejects blank comments.
4. **One file per week**, named ` + "`" + `Weekly-Report-<monday>.pdf` + "`" + ` with the
   Monday in ISO format (YYYY-MM-DD). Regenerating a week overwrites the file.
5. Every page of the PDF carries a "Private and Confidential" footer.
`
