package ui

const stylesheet = `
body { margin: 0; font-family: system-ui, sans-serif; color: #1f2328; display: flex; min-height: 100vh; }
aside { width: 260px; padding: 1.5rem; background: #f0f2f6; box-sizing: border-box; }
aside label { display: block; margin: 1rem 0 .25rem; font-size: .9rem; }
aside select, aside button { width: 100%; padding: .4rem; }
aside button { margin-top: 1.25rem; cursor: pointer; }
main { flex: 1; padding: 1.5rem 2.5rem; max-width: 1200px; }
figure { margin: 1rem 0; }
figure img { max-width: 100%; }
figcaption { color: #57606a; font-size: .85rem; text-align: center; }
.stages { display: grid; grid-template-columns: repeat(4, 1fr); gap: 1.5rem; }
.stage a.button { display: block; margin: .5rem 0; padding: .4rem .6rem; border: 1px solid #d0d7de; border-radius: 6px; text-decoration: none; color: inherit; }
.alert { padding: .75rem 1rem; border-radius: 6px; margin: .75rem 0; }
.alert.success { background: #dafbe1; }
.alert.error { background: #ffebe9; }
.alert.warning { background: #fff8c5; }
.alert.info { background: #ddf4ff; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #d0d7de; padding: .35rem .6rem; text-align: left; font-size: .9rem; }
tr.pii td { background-color: salmon; }
.chart .row { display: flex; align-items: center; gap: .5rem; margin: .25rem 0; }
.chart .label { width: 140px; text-align: right; font-size: .85rem; }
.chart .bar { background: #0969da; height: 1.1rem; min-width: 2px; }
.chart .value { font-size: .85rem; }
`
