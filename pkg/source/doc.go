// Package source loads progress matrices.
//
// A dataset holds structures, the column schema of each family, and the
// rows with their cells. It can come from:
//
//   - a .json file ([JSONLoader], see [ReadJSON] for the layout)
//   - a .toml file ([TOMLLoader])
//   - an .xlsx workbook with structures, columns, rows and cells sheets
//     ([XLSXLoader])
//   - a MongoDB database addressed by a mongodb:// URI ([MongoLoader])
//
// [Load] picks the loader, normalizes enumerations, and validates ids and
// references. This package only reads; editing the matrix is the data
// layer's job.
package source
