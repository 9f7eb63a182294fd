package notify

const emailHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Title}}</title>
  <style>
    body {
      margin: 0;
      padding: 24px;
      background-color: #f3f4f6;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
      color: #111827;
      line-height: 1.5;
    }

    .container {
      max-width: 720px;
      margin: 0 auto;
      background: #ffffff;
      border-radius: 8px;
      border: 1px solid #e5e7eb;
      overflow: hidden;
    }

    .header {
      padding: 20px 24px;
      background: linear-gradient(135deg, #463737 0%, #37393b 100%);
      color: #ffffff;
      font-size: 18px;
      font-weight: 700;
    }

    .report {
      padding: 8px 24px 16px;
      font-size: 14px;
    }

    .report h1 {
      display: none;
    }

    .report h2 {
      font-size: 11px;
      font-weight: 700;
      color: #6b7280;
      text-transform: uppercase;
      letter-spacing: 0.1em;
      margin: 20px 0 8px;
    }

    .report table {
      width: 100%;
      border-collapse: collapse;
    }

    .report th,
    .report td {
      padding: 6px 8px;
      border-bottom: 1px solid #f3f4f6;
    }

    .report th {
      color: #6b7280;
      font-weight: 500;
    }

    .report code {
      font-size: 12px;
      background: #f9fafb;
      padding: 1px 4px;
      border-radius: 3px;
    }

    .footer {
      padding: 16px 24px;
      font-size: 12px;
      color: #9ca3af;
      text-align: center;
      background: #f9fafb;
      border-top: 1px solid #f3f4f6;
    }

    a {
      color: #0b3d91;
      text-decoration: none;
    }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">{{.Title}}</div>
    <div class="report">
      {{.Body}}
    </div>
    <div class="footer">
      Run {{.RunID}}. Generated by <a href=https://github.com/shanehull/lmsentiment target="_blank" rel="noopener">lmsentiment</a>
    </div>
  </div>
</body>
</html>`
