package boardstore

// All write queries hand the row back with `RETURNING *` so the caller's
// struct ends up holding the generated/conflicted row, ids included. Upserts
// conflict on the business key, not the id: group identity is (board, name)
// and item identity is (group, name) because the spreadsheet has no stable
// row ids, and column values are unique per (item, column).

const groupsUpsert = `INSERT INTO groups (group_id, board_id, name, position)
VALUES (:group_id, :board_id, :name, :position)
ON CONFLICT (board_id, name) DO UPDATE SET position = EXCLUDED.position
RETURNING *`

const groupsDelete = `DELETE FROM groups WHERE group_id = :group_id`

const itemsUpsert = `INSERT INTO items (item_id, group_id, board_id, name, position, created_by)
VALUES (:item_id, :group_id, :board_id, :name, :position, :created_by)
ON CONFLICT (group_id, name) DO UPDATE SET position = EXCLUDED.position
RETURNING *`

const itemsDelete = `DELETE FROM items WHERE item_id = :item_id`

const columnsUpsert = `INSERT INTO columns (column_id, board_id, title, type, position, settings)
VALUES (:column_id, :board_id, :title, :type, :position, :settings)
ON CONFLICT (board_id, title) DO UPDATE SET type = EXCLUDED.type, settings = EXCLUDED.settings
RETURNING *`

const columnValuesUpsert = `INSERT INTO column_values (value_id, item_id, column_id, value)
VALUES (:value_id, :item_id, :column_id, :value)
ON CONFLICT (item_id, column_id) DO UPDATE SET value = EXCLUDED.value
RETURNING *`

const columnValuesBatchUpsert = `INSERT INTO column_values (value_id, item_id, column_id, value)
VALUES (:value_id, :item_id, :column_id, :value)
ON CONFLICT (item_id, column_id) DO UPDATE SET value = EXCLUDED.value`

const columnValuesDeleteByItem = `DELETE FROM column_values WHERE item_id = :item_id`
